// Package store holds one session's complaint working set and reconciles it
// against the Remote Complaint Service.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
	"github.com/resolveit/complaint-sync/internal/remote"
	"github.com/resolveit/complaint-sync/internal/view"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// Remote is the slice of the Remote Complaint Service the store depends on.
// *remote.Client satisfies it.
type Remote interface {
	ListComplaints(ctx context.Context) ([]remote.ComplaintRecord, error)
	ListCitizenComplaints(ctx context.Context, email string) ([]remote.ComplaintRecord, error)
	ListOfficerComplaints(ctx context.Context, email string) ([]remote.ComplaintRecord, error)
	SubmitComplaint(ctx context.Context, email string, in remote.SubmitRequest, files []remote.File) (remote.ComplaintRecord, error)
	UpdateStatus(ctx context.Context, id int64, status, requestedBy string) (*remote.ComplaintRecord, error)
	UpdatePriority(ctx context.Context, id int64, priority string) (*remote.ComplaintRecord, error)
	AssignOfficer(ctx context.Context, id int64, officerEmail string) (*remote.ComplaintRecord, error)
	Escalate(ctx context.Context, id int64, level int, reason, requestedBy string) (*remote.ComplaintRecord, error)
	AddNote(ctx context.Context, id int64, content string, isPrivate bool) (remote.NoteRecord, error)
	AddReply(ctx context.Context, id int64, content string, isAdminReply bool) (remote.ReplyRecord, error)
	ListOfficers(ctx context.Context) ([]remote.OfficerRecord, error)
	ListPendingOfficers(ctx context.Context) ([]remote.PendingOfficerRecord, error)
	ApproveOfficer(ctx context.Context, id int64) error
	RejectOfficer(ctx context.Context, id int64) error
	AnalyticsOverview(ctx context.Context) (remote.AnalyticsRecord, error)
}

// Store is the single owner of a session's working set. Records handed out
// are deep copies; mutations go through the operation methods.
type Store struct {
	identity   domain.Identity
	remote     Remote
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu         sync.RWMutex
	complaints []domain.Complaint
	officers   []domain.Officer
	pending    []domain.PendingOfficer
	loaded     bool
	syncedAt   time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithDispatcher publishes store events to d.
func WithDispatcher(d events.Dispatcher) Option {
	return func(s *Store) {
		if d != nil {
			s.dispatcher = d
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds an empty store for identity.
func New(identity domain.Identity, remote Remote, opts ...Option) *Store {
	s := &Store{
		identity:   identity,
		remote:     remote,
		dispatcher: events.Discard,
		logger:     zap.NewNop(),
		now:        time.Now,
		complaints: []domain.Complaint{},
		officers:   []domain.Officer{},
		pending:    []domain.PendingOfficer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Identity returns the identity the store was built for.
func (s *Store) Identity() domain.Identity {
	return s.identity
}

// Complaints returns a copy of the working set in store order.
func (s *Store) Complaints() []domain.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.complaints)
}

// Complaint returns a copy of one record.
func (s *Store) Complaint(id int64) (domain.Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.complaints[i].Clone(), true
	}
	return domain.Complaint{}, false
}

// Loaded reports whether the working set has been fetched or restored, and when.
func (s *Store) Loaded() (bool, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded, s.syncedAt
}

// Restore seeds the working set from a cached snapshot. It is ignored once a
// fetch has completed.
func (s *Store) Restore(complaints []domain.Complaint, takenAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return false
	}
	s.complaints = cloneAll(complaints)
	s.loaded = true
	s.syncedAt = takenAt
	return true
}

// OfficerWorkload partitions the current working set for email. It is
// recomputed on every call.
func (s *Store) OfficerWorkload(email string) domain.Workload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.ComputeWorkload(s.complaints, email)
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(in []domain.Complaint) []domain.Complaint {
	out := make([]domain.Complaint, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func (s *Store) publish(ctx context.Context, eventType events.EventType, complaintID int64, payload interface{}) {
	event := events.New(eventType, s.identity.Email, complaintID, payload)
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

// fail reports err to the session's alert stream and returns it unchanged.
func (s *Store) fail(ctx context.Context, operation string, complaintID int64, err error) error {
	domainErr := apperrors.ToDomainError(err)
	s.logger.Warn("operation failed",
		zap.String("operation", operation),
		zap.Int64("complaint_id", complaintID),
		zap.String("code", domainErr.Code),
		zap.Error(err))
	s.publish(ctx, events.EventOperationFailed, complaintID, events.OperationFailedPayload{
		Operation: operation,
		Message:   "Failed to " + operation + ": " + domainErr.Message,
		Code:      domainErr.Code,
	})
	return err
}
