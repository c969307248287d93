package service

import (
	"context"
	"fmt"

	"e911audit/internal/adapter"
	"e911audit/internal/repository"
)

// CIDSource produces extension -> emergency CID
type CIDSource interface {
	Name() string
	EmergencyCIDs(ctx context.Context) (map[string]string, error)
}

// ConsoleCIDSource reads emergency CIDs from `database show` output
type ConsoleCIDSource struct {
	runner adapter.Runner
}

// NewConsoleCIDSource creates a CID source backed by the console runner
func NewConsoleCIDSource(runner adapter.Runner) *ConsoleCIDSource {
	return &ConsoleCIDSource{runner: runner}
}

// Name returns the source identifier
func (s *ConsoleCIDSource) Name() string {
	return "cli"
}

// EmergencyCIDs runs `database show` and parses it
func (s *ConsoleCIDSource) EmergencyCIDs(ctx context.Context) (map[string]string, error) {
	out, err := s.runner.Run(ctx, adapter.CommandDatabaseShow)
	if err != nil {
		return nil, err
	}
	return adapter.ParseEmergencyCIDs(out), nil
}

// StoreCIDSource reads emergency CIDs straight from astdb
type StoreCIDSource struct {
	store repository.DeviceStore
}

// NewStoreCIDSource creates a CID source backed by an astdb store
func NewStoreCIDSource(store repository.DeviceStore) *StoreCIDSource {
	return &StoreCIDSource{store: store}
}

// Name returns the source identifier
func (s *StoreCIDSource) Name() string {
	return "sqlite"
}

// EmergencyCIDs reads the DEVICE family and parses it like `database show`
func (s *StoreCIDSource) EmergencyCIDs(ctx context.Context) (map[string]string, error) {
	entries, err := s.store.Entries(ctx, "DEVICE")
	if err != nil {
		return nil, fmt.Errorf("read astdb: %w", err)
	}
	return adapter.ParseEmergencyCIDs(adapter.FormatDatabaseShow(entries)), nil
}
