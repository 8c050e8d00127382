// Package insights serves dashboard statistics computed from the ledger on
// every read.
package insights

import (
	"context"
	"log/slog"
	"time"

	"github.com/JaimeStill/reviewguard/internal/aggregate"
	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
)

// System defines the public contract for dashboard reads.
type System interface {
	Handler() *Handler

	// Dashboard aggregates the owner's own records.
	Dashboard(ctx context.Context, owner identity.Identity) (*aggregate.Dashboard, error)

	// AdminDashboard aggregates every record across owners.
	AdminDashboard(ctx context.Context) (*aggregate.AdminDashboard, error)
}

// Option configures the insights system.
type Option func(*service)

// WithClock sets the reference time source for the trailing series.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	ledger ledger.System
	now    func() time.Time
	logger *slog.Logger
}

// New creates the insights system over l.
func New(l ledger.System, logger *slog.Logger, opts ...Option) System {
	s := &service{
		ledger: l,
		now:    time.Now,
		logger: logger.With("system", "insights"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Dashboard(ctx context.Context, owner identity.Identity) (*aggregate.Dashboard, error) {
	records, err := s.ledger.ListByOwner(ctx, owner.OwnerID)
	if err != nil {
		return nil, err
	}

	d := aggregate.BuildDashboard(records, s.now())
	return &d, nil
}

func (s *service) AdminDashboard(ctx context.Context) (*aggregate.AdminDashboard, error) {
	records, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	d := aggregate.BuildAdminDashboard(records, s.now())
	return &d, nil
}
