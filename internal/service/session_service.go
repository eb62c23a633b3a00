package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/auth"
	"github.com/resolveit/complaint-sync/internal/config"
	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
	"github.com/resolveit/complaint-sync/internal/normalize"
	"github.com/resolveit/complaint-sync/internal/observability"
	"github.com/resolveit/complaint-sync/internal/persistence"
	"github.com/resolveit/complaint-sync/internal/remote"
	"github.com/resolveit/complaint-sync/internal/store"
	"github.com/resolveit/complaint-sync/internal/worker"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

// Session is one authenticated caller: its identity, its working set and the
// alerts raised while operating on it.
type Session struct {
	Key       string
	Identity  domain.Identity
	Store     *store.Store
	Alerts    *AlertService
	ExpiresAt time.Time

	poller   *worker.Poller
	lastSeen time.Time
}

// SessionService owns every live session, keyed by a digest of its token.
type SessionService struct {
	client    *remote.Client
	inspector *auth.TokenInspector
	scheduler worker.Scheduler
	snapshots *persistence.SnapshotCache
	cfg       config.SyncConfig
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// SessionOption customizes a SessionService.
type SessionOption func(*SessionService)

// WithSnapshots warm-starts sessions from cache and keeps it current.
func WithSnapshots(cache *persistence.SnapshotCache) SessionOption {
	return func(s *SessionService) {
		s.snapshots = cache
	}
}

// WithSessionLogger sets the parent logger of every session.
func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionClock overrides time.Now for idle and expiry checks.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionService builds the registry. client must not carry a token.
func NewSessionService(client *remote.Client, scheduler worker.Scheduler, cfg config.SyncConfig, opts ...SessionOption) *SessionService {
	s := &SessionService{
		client:    client,
		inspector: auth.NewTokenInspector(),
		scheduler: scheduler,
		cfg:       cfg,
		logger:    zap.NewNop(),
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates against the Remote Complaint Service and opens a session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}
	rec, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, "login", rec)
}

// Register creates an account and opens a session for it.
func (s *SessionService) Register(ctx context.Context, name, email, password string, role domain.Role) (*Session, error) {
	email = strings.TrimSpace(email)
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email and password required", nil)
	}
	if role == "" {
		role = domain.RoleCitizen
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	rec, err := s.client.Register(ctx, remote.RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: password,
		Role:     normalize.DenormalizeRole(role),
	})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, "register", rec)
}

func (s *SessionService) establish(ctx context.Context, operation string, rec remote.AuthRecord) (*Session, error) {
	if rec.Token == "" {
		return nil, apperrors.NewMalformedResponse(operation, errors.New("no token in response"))
	}
	claims, err := s.inspector.Inspect(rec.Token)
	if errors.Is(err, auth.ErrTokenExpired) {
		return nil, apperrors.NewUnauthorized("session expired")
	}
	identity, err := normalize.Identity(rec, rec.Token)
	if err != nil {
		return nil, apperrors.NewMalformedResponse(operation, err)
	}
	return s.open(ctx, identity, claims.ExpiresAt), nil
}

// Authenticate resolves token to its session's identity, opening a session
// from /auth/me when the gateway has not seen the token yet.
func (s *SessionService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	key := auth.SessionKey(token)
	claims, err := s.inspector.Inspect(token)
	if errors.Is(err, auth.ErrTokenExpired) {
		s.closeKey(key)
		return domain.Identity{}, apperrors.NewUnauthorized("session expired")
	}
	if session, ok := s.lookup(key); ok {
		return session.Identity, nil
	}

	rec, err := s.client.WithToken(token).Me(ctx)
	if err != nil {
		switch apperrors.UpstreamStatus(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.Identity{}, apperrors.NewUnauthorized("invalid session")
		}
		return domain.Identity{}, err
	}
	identity, err := normalize.Identity(rec, token)
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorized("unsupported role")
	}
	return s.open(ctx, identity, claims.ExpiresAt).Identity, nil
}

// Session returns the live session for token.
func (s *SessionService) Session(token string) (*Session, bool) {
	return s.lookup(auth.SessionKey(token))
}

func (s *SessionService) lookup(key string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if ok {
		session.lastSeen = s.now()
	}
	return session, ok
}

// open builds the session's store, alert buffer and poller, performs the
// initial fetch and registers it. A session opened concurrently for the same
// token wins and this one is discarded.
func (s *SessionService) open(ctx context.Context, identity domain.Identity, expiresAt time.Time) *Session {
	key := auth.SessionKey(identity.Token)
	if existing, ok := s.lookup(key); ok {
		return existing
	}

	logger := observability.WithIdentity(s.logger, identity)
	dispatcher := events.NewInMemoryDispatcher()
	alerts := NewAlertService(dispatcher, logger, s.cfg.AlertBufferSize)
	worker.StartAlertWorker(alerts)

	st := store.New(identity, s.client.WithToken(identity.Token),
		store.WithDispatcher(dispatcher),
		store.WithLogger(logger),
		store.WithClock(s.now))
	s.warmStart(ctx, st, logger)
	s.snapshots.Subscribe(dispatcher, identity)

	session := &Session{
		Key:       key,
		Identity:  identity,
		Store:     st,
		Alerts:    alerts,
		ExpiresAt: expiresAt,
		poller:    worker.NewPoller(s.scheduler, logger, s.jobs(st, identity)...),
	}

	if err := st.FetchAll(ctx); err != nil {
		logger.Warn("initial complaint fetch failed", zap.Error(err))
	}
	if identity.Role == domain.RoleAdmin {
		if err := st.FetchOfficers(ctx); err != nil {
			logger.Warn("initial officer fetch failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	if existing, ok := s.sessions[key]; ok {
		existing.lastSeen = s.now()
		s.mu.Unlock()
		return existing
	}
	session.lastSeen = s.now()
	s.sessions[key] = session
	s.mu.Unlock()

	session.poller.Start()
	logger.Info("session opened")
	return session
}

func (s *SessionService) warmStart(ctx context.Context, st *store.Store, logger *zap.Logger) {
	snapshot, ok, err := s.snapshots.Load(ctx, st.Identity())
	if err != nil {
		logger.Warn("snapshot load failed", zap.Error(err))
		return
	}
	if ok && st.Restore(snapshot.Complaints, snapshot.TakenAt) {
		logger.Debug("session restored from snapshot",
			zap.Int("complaints", len(snapshot.Complaints)),
			zap.Time("taken_at", snapshot.TakenAt))
	}
}

func (s *SessionService) jobs(st *store.Store, identity domain.Identity) []worker.Job {
	jobs := []worker.Job{{
		Name:     "complaints",
		Interval: s.cfg.ComplaintsPollInterval(),
		Run:      st.Reconcile,
	}}
	if identity.Role == domain.RoleAdmin {
		jobs = append(jobs, worker.Job{
			Name:     "officers",
			Interval: s.cfg.OfficersPollInterval(),
			Run:      st.ReconcileOfficers,
		})
	}
	return jobs
}

// Logout closes token's session and forgets its cached working set.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	session := s.closeKey(auth.SessionKey(token))
	if session == nil {
		return nil
	}
	return s.snapshots.Delete(ctx, session.Identity)
}

func (s *SessionService) closeKey(key string) *Session {
	s.mu.Lock()
	session, ok := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	session.poller.Stop()
	return session
}

// Sweep closes sessions that were idle too long or whose token expired. It
// returns how many were closed.
func (s *SessionService) Sweep() int {
	now := s.now()
	idle := s.cfg.SessionIdle()

	s.mu.Lock()
	var stale []*Session
	for key, session := range s.sessions {
		expired := !session.ExpiresAt.IsZero() && !now.Before(session.ExpiresAt)
		if expired || now.Sub(session.lastSeen) >= idle {
			stale = append(stale, session)
			delete(s.sessions, key)
		}
	}
	s.mu.Unlock()

	for _, session := range stale {
		session.poller.Stop()
	}
	return len(stale)
}

// StartSweeper runs Sweep every interval until the returned func is called.
func (s *SessionService) StartSweeper(interval time.Duration) func() {
	return s.scheduler.Every(interval, func(ctx context.Context) {
		if n := s.Sweep(); n > 0 {
			s.logger.Info("sessions swept", zap.Int("count", n))
		}
	})
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every session's poller.
func (s *SessionService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()
	for _, session := range sessions {
		session.poller.Stop()
	}
}

// RequestPasswordReset asks the service to send a reset token to email.
func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	return s.client.RequestPasswordReset(ctx, email)
}

// ResetPassword applies a reset token.
func (s *SessionService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return apperrors.NewValidationError("token and newPassword required", nil)
	}
	return s.client.ResetPassword(ctx, token, newPassword)
}

// RegisterOfficer forwards a self-service officer sign-up for admin approval.
func (s *SessionService) RegisterOfficer(ctx context.Context, reg domain.OfficerRegistration) error {
	if strings.TrimSpace(reg.Name) == "" || strings.TrimSpace(reg.Email) == "" || reg.Password == "" {
		return apperrors.NewValidationError("name, email and password required", nil)
	}
	if strings.TrimSpace(reg.Department) == "" {
		return apperrors.NewValidationError("department required", nil)
	}
	return s.client.RegisterOfficer(ctx, reg)
}
