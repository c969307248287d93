package service

import (
	"context"
	"fmt"
	"log/slog"

	"e911audit/internal/adapter"
	"e911audit/internal/domain"
)

// AuditOptions controls how the report is built
type AuditOptions struct {
	// Order selects section ordering (lexical by default)
	Order domain.AddressOrder
	// Findings attaches compliance findings to the report
	Findings bool
	// Strict aborts on command or store failure instead of treating it as empty
	Strict bool
}

// AuditService joins registrations with emergency CIDs
type AuditService struct {
	runner   adapter.Runner
	cids     CIDSource
	listings []adapter.Listing
	opts     AuditOptions
	log      *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(runner adapter.Runner, cids CIDSource, opts AuditOptions, log *slog.Logger) *AuditService {
	if opts.Order == "" {
		opts.Order = domain.AddressOrderLexical
	}
	return &AuditService{
		runner:   runner,
		cids:     cids,
		listings: adapter.DefaultListings,
		opts:     opts,
		log:      log,
	}
}

// Collect runs every registration listing, in order, into one address map
func (s *AuditService) Collect(ctx context.Context) (*domain.AddressMap, error) {
	addresses := domain.NewAddressMap()

	for _, l := range s.listings {
		out, err := s.runner.Run(ctx, l.Command)
		if err != nil {
			if s.opts.Strict {
				return nil, fmt.Errorf("%s listing: %w", l.Name, err)
			}
			s.log.Warn("listing failed, treating as empty", "listing", l.Name, "runner", s.runner.Name(), "error", err)
			continue
		}

		rows := l.Collect(out, addresses)
		s.log.Info("collected registrations", "listing", l.Name, "rows", rows)
	}

	return addresses, nil
}

// EmergencyCIDs reads extension -> CID from the configured source
func (s *AuditService) EmergencyCIDs(ctx context.Context) (map[string]string, error) {
	cids, err := s.cids.EmergencyCIDs(ctx)
	if err != nil {
		if s.opts.Strict {
			return nil, fmt.Errorf("emergency cids (%s): %w", s.cids.Name(), err)
		}
		s.log.Warn("emergency cid lookup failed, treating as empty", "source", s.cids.Name(), "error", err)
		return map[string]string{}, nil
	}

	s.log.Info("read emergency cids", "source", s.cids.Name(), "entries", len(cids))
	return cids, nil
}

// Run performs the audit and returns the sorted report
func (s *AuditService) Run(ctx context.Context) (*domain.Report, error) {
	addresses, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}

	cids, err := s.EmergencyCIDs(ctx)
	if err != nil {
		return nil, err
	}

	matched := addresses.ApplyCIDs(cids)
	s.log.Info("joined emergency cids",
		"addresses", addresses.Len(),
		"extensions", addresses.ExtensionCount(),
		"with_cid", matched)

	report := addresses.Report(s.opts.Order)
	if report.IsEmpty() {
		s.log.Warn("no registered extensions found", "runner", s.runner.Name())
	}
	if s.opts.Findings {
		report.Findings = domain.Analyze(report)
		s.log.Info("analyzed report", "findings", len(report.Findings))
	}

	return report, nil
}
