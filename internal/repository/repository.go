package repository

import (
	"context"

	"e911audit/internal/domain"
)

// DeviceStore defines read access to the Asterisk internal database (astdb)
type DeviceStore interface {
	// Entries returns every key under /<family>/, ordered by key
	Entries(ctx context.Context, family string) ([]domain.DBEntry, error)

	// Close releases resources
	Close() error
}
