package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
	"github.com/resolveit/complaint-sync/internal/normalize"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

const (
	opFetchOfficers  = "fetch officers"
	opFetchPending   = "fetch pending officers"
	opApproveOfficer = "approve officer"
	opRejectOfficer  = "reject officer"
	opAnalytics      = "load analytics"
)

// Officers returns a copy of the officer directory.
func (s *Store) Officers() []domain.Officer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Officer{}, s.officers...)
}

// PendingOfficers returns a copy of the approval queue.
func (s *Store) PendingOfficers() []domain.PendingOfficer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PendingOfficer{}, s.pending...)
}

// FetchOfficers reloads the officer directory. Only admins use it; for other
// roles the directory is emptied without a request.
func (s *Store) FetchOfficers(ctx context.Context) error {
	if err := s.ReconcileOfficers(ctx); err != nil {
		return s.fail(ctx, opFetchOfficers, 0, err)
	}
	return nil
}

// ReconcileOfficers is FetchOfficers without the alert.
func (s *Store) ReconcileOfficers(ctx context.Context) error {
	if s.identity.Role != domain.RoleAdmin {
		s.mu.Lock()
		s.officers = []domain.Officer{}
		s.mu.Unlock()
		return nil
	}
	records, err := s.remote.ListOfficers(ctx)
	if err != nil {
		return err
	}
	officers := normalize.Officers(records)

	s.mu.Lock()
	s.officers = officers
	s.mu.Unlock()

	s.publish(ctx, events.EventOfficersReplaced, 0, events.OfficersReplacedPayload{Officers: append([]domain.Officer{}, officers...)})
	return nil
}

func (s *Store) refreshOfficers(ctx context.Context) {
	if err := s.ReconcileOfficers(ctx); err != nil {
		s.logger.Warn("officer refresh failed", zap.Error(err))
	}
}

// FetchPendingOfficers reloads the approval queue (admin only).
func (s *Store) FetchPendingOfficers(ctx context.Context) ([]domain.PendingOfficer, error) {
	if s.identity.Role != domain.RoleAdmin {
		s.mu.Lock()
		s.pending = []domain.PendingOfficer{}
		s.mu.Unlock()
		return []domain.PendingOfficer{}, nil
	}
	records, err := s.remote.ListPendingOfficers(ctx)
	if err != nil {
		return nil, s.fail(ctx, opFetchPending, 0, err)
	}
	pending := normalize.PendingOfficers(records)

	s.mu.Lock()
	s.pending = pending
	s.mu.Unlock()
	return append([]domain.PendingOfficer{}, pending...), nil
}

// ApproveOfficer approves a pending registration and refreshes both directories.
func (s *Store) ApproveOfficer(ctx context.Context, id int64) error {
	return s.decide(ctx, opApproveOfficer, id, s.remote.ApproveOfficer)
}

// RejectOfficer rejects a pending registration and refreshes both directories.
func (s *Store) RejectOfficer(ctx context.Context, id int64) error {
	return s.decide(ctx, opRejectOfficer, id, s.remote.RejectOfficer)
}

func (s *Store) decide(ctx context.Context, operation string, id int64, call func(context.Context, int64) error) error {
	if s.identity.Role != domain.RoleAdmin {
		return s.fail(ctx, operation, 0, apperrors.NewForbidden("admin role required"))
	}
	err := call(ctx, id)
	if _, fetchErr := s.FetchPendingOfficers(ctx); fetchErr != nil {
		s.logger.Warn("pending officer refresh failed", zap.Error(fetchErr))
	}
	if err != nil {
		return s.fail(ctx, operation, 0, err)
	}
	s.refreshOfficers(ctx)
	return nil
}

// AnalyticsOverview loads the service's admin aggregate.
func (s *Store) AnalyticsOverview(ctx context.Context) (domain.AnalyticsOverview, error) {
	if s.identity.Role != domain.RoleAdmin {
		return domain.AnalyticsOverview{}, s.fail(ctx, opAnalytics, 0, apperrors.NewForbidden("admin role required"))
	}
	rec, err := s.remote.AnalyticsOverview(ctx)
	if err != nil {
		return domain.AnalyticsOverview{}, s.fail(ctx, opAnalytics, 0, err)
	}
	return normalize.Analytics(rec), nil
}
