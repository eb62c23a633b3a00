package store

import (
	"context"
	"sync"

	"github.com/resolveit/complaint-sync/internal/remote"
)

// fakeRemote serves a mutable record list and lets tests override single calls.
type fakeRemote struct {
	mu      sync.Mutex
	records []remote.ComplaintRecord
	listErr error
	calls   []string

	submit         func(email string, in remote.SubmitRequest, files []remote.File) (remote.ComplaintRecord, error)
	updateStatus   func(id int64, status, requestedBy string) (*remote.ComplaintRecord, error)
	updatePriority func(id int64, priority string) (*remote.ComplaintRecord, error)
	assign         func(id int64, email string) (*remote.ComplaintRecord, error)
	escalate       func(id int64, level int, reason, requestedBy string) (*remote.ComplaintRecord, error)
	addNote        func(id int64, content string, isPrivate bool) (remote.NoteRecord, error)
	addReply       func(id int64, content string, isAdminReply bool) (remote.ReplyRecord, error)
	officers       []remote.OfficerRecord
	pending        []remote.PendingOfficerRecord
	decisionErr    error
	analytics      remote.AnalyticsRecord
}

func (f *fakeRemote) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRemote) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeRemote) setRecords(recs ...remote.ComplaintRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = recs
}

func (f *fakeRemote) list(call string) ([]remote.ComplaintRecord, error) {
	f.record(call)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]remote.ComplaintRecord{}, f.records...), nil
}

func (f *fakeRemote) ListComplaints(ctx context.Context) ([]remote.ComplaintRecord, error) {
	return f.list("list all")
}

func (f *fakeRemote) ListCitizenComplaints(ctx context.Context, email string) ([]remote.ComplaintRecord, error) {
	return f.list("list citizen " + email)
}

func (f *fakeRemote) ListOfficerComplaints(ctx context.Context, email string) ([]remote.ComplaintRecord, error) {
	return f.list("list officer " + email)
}

func (f *fakeRemote) SubmitComplaint(ctx context.Context, email string, in remote.SubmitRequest, files []remote.File) (remote.ComplaintRecord, error) {
	f.record("submit")
	return f.submit(email, in, files)
}

func (f *fakeRemote) UpdateStatus(ctx context.Context, id int64, status, requestedBy string) (*remote.ComplaintRecord, error) {
	f.record("update status")
	if f.updateStatus == nil {
		return nil, nil
	}
	return f.updateStatus(id, status, requestedBy)
}

func (f *fakeRemote) UpdatePriority(ctx context.Context, id int64, priority string) (*remote.ComplaintRecord, error) {
	f.record("update priority")
	if f.updatePriority == nil {
		return nil, nil
	}
	return f.updatePriority(id, priority)
}

func (f *fakeRemote) AssignOfficer(ctx context.Context, id int64, email string) (*remote.ComplaintRecord, error) {
	f.record("assign")
	if f.assign == nil {
		return nil, nil
	}
	return f.assign(id, email)
}

func (f *fakeRemote) Escalate(ctx context.Context, id int64, level int, reason, requestedBy string) (*remote.ComplaintRecord, error) {
	f.record("escalate")
	if f.escalate == nil {
		return nil, nil
	}
	return f.escalate(id, level, reason, requestedBy)
}

func (f *fakeRemote) AddNote(ctx context.Context, id int64, content string, isPrivate bool) (remote.NoteRecord, error) {
	f.record("add note")
	return f.addNote(id, content, isPrivate)
}

func (f *fakeRemote) AddReply(ctx context.Context, id int64, content string, isAdminReply bool) (remote.ReplyRecord, error) {
	f.record("add reply")
	return f.addReply(id, content, isAdminReply)
}

func (f *fakeRemote) ListOfficers(ctx context.Context) ([]remote.OfficerRecord, error) {
	f.record("list officers")
	return f.officers, nil
}

func (f *fakeRemote) ListPendingOfficers(ctx context.Context) ([]remote.PendingOfficerRecord, error) {
	f.record("list pending")
	return f.pending, nil
}

func (f *fakeRemote) ApproveOfficer(ctx context.Context, id int64) error {
	f.record("approve")
	return f.decisionErr
}

func (f *fakeRemote) RejectOfficer(ctx context.Context, id int64) error {
	f.record("reject")
	return f.decisionErr
}

func (f *fakeRemote) AnalyticsOverview(ctx context.Context) (remote.AnalyticsRecord, error) {
	f.record("analytics")
	return f.analytics, nil
}
