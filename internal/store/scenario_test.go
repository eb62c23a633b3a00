package store_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/remote"
	"github.com/resolveit/complaint-sync/internal/store"
	"github.com/resolveit/complaint-sync/internal/worker"
)

// complaintService is an in-memory stand-in for the Remote Complaint Service.
type complaintService struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*remote.ComplaintRecord
	order  []int64
}

func newComplaintService() *complaintService {
	return &complaintService{nextID: 501, byID: map[int64]*remote.ComplaintRecord{}}
}

func (s *complaintService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/complaints", func(w http.ResponseWriter, r *http.Request) {
		s.writeList(w, func(*remote.ComplaintRecord) bool { return true })
	})
	mux.HandleFunc("GET /api/complaints/user", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		s.writeList(w, func(c *remote.ComplaintRecord) bool { return c.SubmittedBy == email })
	})
	mux.HandleFunc("GET /api/officer/complaints", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		s.writeList(w, func(c *remote.ComplaintRecord) bool { return c.AssignedTo == email })
	})
	mux.HandleFunc("POST /api/complaints/submit", func(w http.ResponseWriter, r *http.Request) {
		var in remote.SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		id := s.nextID
		s.nextID++
		anonymous := in.IsAnonymous
		rec := &remote.ComplaintRecord{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			Status:      "PENDING",
			Priority:    "MEDIUM",
			IsAnonymous: &anonymous,
			SubmittedBy: r.URL.Query().Get("email"),
			SubmittedAt: time.Now().UTC().Format("2006-01-02T15:04:05"),
		}
		s.byID[id] = rec
		s.order = append(s.order, id)
		out := *rec
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("POST /api/admin/complaints/{id}/assign", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			OfficerEmail string `json:"officerEmail"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if !s.update(w, r, func(c *remote.ComplaintRecord) {
			c.AssignedTo = in.OfficerEmail
			c.Status = "ASSIGNED"
		}) {
			return
		}
		_, _ = io.WriteString(w, "Officer assigned successfully.")
	})
	mux.HandleFunc("POST /api/complaints/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		var out remote.ComplaintRecord
		if !s.update(w, r, func(c *remote.ComplaintRecord) {
			c.Status = in.Status
			out = *c
		}) {
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	return mux
}

func (s *complaintService) writeList(w http.ResponseWriter, keep func(*remote.ComplaintRecord) bool) {
	s.mu.Lock()
	out := []remote.ComplaintRecord{}
	for _, id := range s.order {
		if rec := s.byID[id]; keep(rec) {
			out = append(out, *rec)
		}
	}
	s.mu.Unlock()
	_ = json.NewEncoder(w).Encode(out)
}

func (s *complaintService) update(w http.ResponseWriter, r *http.Request, fn func(*remote.ComplaintRecord)) bool {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		http.Error(w, "Complaint not found", http.StatusNotFound)
		return false
	}
	fn(rec)
	return true
}

func TestPotholeScenario(t *testing.T) {
	svc := newComplaintService()
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()
	client := remote.NewClient(srv.URL + "/api")
	ctx := context.Background()

	citizen := domain.Identity{Email: "jane@example.com", Role: domain.RoleCitizen, Token: "citizen-token"}
	admin := domain.Identity{Email: "root@city.gov", Role: domain.RoleAdmin, Token: "admin-token"}
	officer := domain.Identity{Email: "officer@city.gov", Role: domain.RoleOfficer, Token: "officer-token"}

	citizenStore := store.New(citizen, client.WithToken(citizen.Token))
	created, err := citizenStore.Submit(ctx, domain.SubmitDetails{
		Title:       "Pothole on Main St",
		Description: "Deep pothole near the crossing",
		Category:    "Infrastructure",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(501), created.ID)

	list := citizenStore.Complaints()
	require.Len(t, list, 1)
	assert.Equal(t, int64(501), list[0].ID)
	assert.Equal(t, domain.StatusPending, list[0].Status)
	assert.Equal(t, domain.PriorityMedium, list[0].Priority)

	adminStore := store.New(admin, client.WithToken(admin.Token))
	require.NoError(t, adminStore.FetchAll(ctx))
	assigned, err := adminStore.Assign(ctx, 501, "officer@city.gov")
	require.NoError(t, err)
	assert.Equal(t, "officer@city.gov", assigned.AssignedTo)
	assert.Equal(t, domain.StatusAssigned, assigned.Status)

	scheduler := worker.NewManualScheduler()
	officerStore := store.New(officer, client.WithToken(officer.Token))
	require.NoError(t, officerStore.FetchAll(ctx))
	poller := worker.NewPoller(scheduler, nil, worker.Job{Name: "complaints", Interval: 10 * time.Second, Run: officerStore.Reconcile})
	poller.Start()
	defer poller.Stop()

	resolved, err := officerStore.UpdateStatus(ctx, 501, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, resolved.Status)

	scheduler.Advance(10 * time.Second)
	c, ok := officerStore.Complaint(501)
	require.True(t, ok)
	assert.Equal(t, domain.StatusResolved, c.Status)
	assert.Equal(t, "officer@city.gov", c.AssignedTo)

	require.NoError(t, citizenStore.FetchAll(ctx))
	c, _ = citizenStore.Complaint(501)
	assert.Equal(t, domain.StatusResolved, c.Status)
}
