package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
	"github.com/resolveit/complaint-sync/internal/normalize"
	"github.com/resolveit/complaint-sync/internal/remote"
)

const opFetchComplaints = "fetch complaints"

// FetchAll replaces the working set with the role's view of the service:
// admins get every complaint, officers their assignments, citizens their own
// submissions. A non-admin without an email gets an empty set and no request
// is made. On failure the previous set is kept and an alert is raised.
func (s *Store) FetchAll(ctx context.Context) error {
	if err := s.Reconcile(ctx); err != nil {
		return s.fail(ctx, opFetchComplaints, 0, err)
	}
	return nil
}

// Reconcile is FetchAll without the alert. The poller and the corrective
// re-fetch after a failed write use it.
func (s *Store) Reconcile(ctx context.Context) error {
	records, skipped, err := s.list(ctx)
	if err != nil {
		return err
	}
	if skipped {
		s.logger.Warn("identity has no email; skipping complaint fetch", zap.String("role", string(s.identity.Role)))
	}

	complaints, rejected := normalize.Complaints(records)
	for _, rejectErr := range rejected {
		s.logger.Warn("dropping complaint record", zap.Error(rejectErr))
	}

	s.mu.Lock()
	s.complaints = complaints
	s.loaded = true
	s.syncedAt = s.now()
	snapshot := cloneAll(s.complaints)
	s.mu.Unlock()

	s.publish(ctx, events.EventComplaintsReplaced, 0, events.ComplaintsReplacedPayload{
		Role:       s.identity.Role,
		Complaints: snapshot,
		Rejected:   len(rejected),
	})
	return nil
}

func (s *Store) list(ctx context.Context) ([]remote.ComplaintRecord, bool, error) {
	if s.identity.Role == domain.RoleAdmin {
		records, err := s.remote.ListComplaints(ctx)
		return records, false, err
	}
	if s.identity.Email == "" {
		return nil, true, nil
	}
	var (
		records []remote.ComplaintRecord
		err     error
	)
	if s.identity.Role == domain.RoleOfficer {
		records, err = s.remote.ListOfficerComplaints(ctx, s.identity.Email)
	} else {
		records, err = s.remote.ListCitizenComplaints(ctx, s.identity.Email)
	}
	return records, false, err
}

// resync re-fetches after a failed write so optimistic values are discarded.
// Its own failure is only logged; the next poll retries.
func (s *Store) resync(ctx context.Context, operation string) {
	if err := s.Reconcile(ctx); err != nil {
		s.logger.Warn("corrective fetch failed", zap.String("operation", operation), zap.Error(err))
	}
}
