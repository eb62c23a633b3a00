package store

import (
	"context"
	"strings"
	"time"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
	"github.com/resolveit/complaint-sync/internal/normalize"
	"github.com/resolveit/complaint-sync/internal/remote"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

const (
	opSubmit         = "submit complaint"
	opUpdateStatus   = "update status"
	opUpdatePriority = "update priority"
	opAssign         = "assign complaint"
	opEscalate       = "escalate complaint"
	opAddNote        = "add note"
	opAddReply       = "add reply"
)

// Submit creates a complaint for the session's citizen. Uploads switch the
// request to multipart. The record appears locally only once the service has
// assigned it an id, at the front of the working set.
func (s *Store) Submit(ctx context.Context, details domain.SubmitDetails, uploads []domain.Upload) (domain.Complaint, error) {
	if s.identity.Email == "" {
		return domain.Complaint{}, s.fail(ctx, opSubmit, 0, apperrors.NewPreconditionError("submitter email is required"))
	}
	if strings.TrimSpace(details.Title) == "" || strings.TrimSpace(details.Description) == "" {
		return domain.Complaint{}, s.fail(ctx, opSubmit, 0, apperrors.NewValidationError("title and description are required", nil))
	}
	req := remote.SubmitRequest{
		Title:       strings.TrimSpace(details.Title),
		Description: details.Description,
		Category:    strings.TrimSpace(details.Category),
		IsAnonymous: details.IsAnonymous,
	}
	if details.Priority != "" {
		if !details.Priority.Valid() {
			return domain.Complaint{}, s.fail(ctx, opSubmit, 0, apperrors.NewValidationError("unknown priority", map[string]any{"priority": details.Priority}))
		}
		req.Priority = normalize.DenormalizePriority(details.Priority)
	}
	files := make([]remote.File, 0, len(uploads))
	for _, u := range uploads {
		files = append(files, remote.File{Name: u.FileName, ContentType: u.ContentType, Data: u.Data})
	}

	rec, err := s.remote.SubmitComplaint(ctx, s.identity.Email, req, files)
	if err != nil {
		s.resync(ctx, opSubmit)
		return domain.Complaint{}, s.fail(ctx, opSubmit, 0, err)
	}
	created, err := normalize.Complaint(rec)
	if err != nil {
		s.resync(ctx, opSubmit)
		return domain.Complaint{}, s.fail(ctx, opSubmit, rec.ID, apperrors.NewMalformedResponse(opSubmit, err))
	}

	s.mu.Lock()
	if i := s.indexLocked(created.ID); i >= 0 {
		s.complaints = append(s.complaints[:i], s.complaints[i+1:]...)
	}
	s.complaints = append([]domain.Complaint{created}, s.complaints...)
	s.mu.Unlock()

	s.publish(ctx, events.EventComplaintCreated, created.ID, events.ComplaintChangedPayload{Operation: opSubmit, Complaint: created.Clone()})
	return created.Clone(), nil
}

// UpdateStatus rewrites the local status at once, then sends the change. On
// failure the working set is re-fetched to drop the optimistic value.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (domain.Complaint, error) {
	if !status.Valid() {
		return domain.Complaint{}, s.fail(ctx, opUpdateStatus, id, apperrors.NewValidationError("unknown status", map[string]any{"status": status}))
	}
	s.patch(id, func(c *domain.Complaint) { c.Status = status })

	rec, err := s.remote.UpdateStatus(ctx, id, normalize.DenormalizeStatus(status), s.identity.Email)
	return s.settle(ctx, opUpdateStatus, id, rec, err)
}

// UpdatePriority follows the same optimistic pattern as UpdateStatus.
func (s *Store) UpdatePriority(ctx context.Context, id int64, priority domain.ComplaintPriority) (domain.Complaint, error) {
	if !priority.Valid() {
		return domain.Complaint{}, s.fail(ctx, opUpdatePriority, id, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority}))
	}
	s.patch(id, func(c *domain.Complaint) { c.Priority = priority })

	rec, err := s.remote.UpdatePriority(ctx, id, normalize.DenormalizePriority(priority))
	return s.settle(ctx, opUpdatePriority, id, rec, err)
}

// settle finishes an optimistic write: merge the answer, or re-fetch and alert.
func (s *Store) settle(ctx context.Context, operation string, id int64, rec *remote.ComplaintRecord, err error) (domain.Complaint, error) {
	if err != nil {
		s.resync(ctx, operation)
		return domain.Complaint{}, s.fail(ctx, operation, id, err)
	}
	if rec != nil {
		if err := s.merge(*rec); err != nil {
			s.resync(ctx, operation)
			return domain.Complaint{}, s.fail(ctx, operation, id, apperrors.NewMalformedResponse(operation, err))
		}
	}
	return s.changed(ctx, operation, id), nil
}

// Assign hands the complaint to officerEmail. Nothing changes locally until the
// service answers; a plain-text acknowledgement only replaces AssignedTo and is
// followed by a re-fetch to pick up the server-side status change.
func (s *Store) Assign(ctx context.Context, id int64, officerEmail string) (domain.Complaint, error) {
	officerEmail = strings.TrimSpace(officerEmail)
	if officerEmail == "" {
		return domain.Complaint{}, s.fail(ctx, opAssign, id, apperrors.NewValidationError("officer email is required", nil))
	}
	rec, err := s.remote.AssignOfficer(ctx, id, officerEmail)
	if err != nil {
		s.resync(ctx, opAssign)
		return domain.Complaint{}, s.fail(ctx, opAssign, id, err)
	}
	if rec != nil {
		if err := s.merge(*rec); err != nil {
			s.resync(ctx, opAssign)
			return domain.Complaint{}, s.fail(ctx, opAssign, id, apperrors.NewMalformedResponse(opAssign, err))
		}
	} else {
		s.patch(id, func(c *domain.Complaint) { c.AssignedTo = officerEmail })
		s.resync(ctx, opAssign)
	}
	out := s.changed(ctx, opAssign, id)
	if s.identity.Role == domain.RoleAdmin {
		s.refreshOfficers(ctx)
	}
	return out, nil
}

// Escalate raises the complaint's handling level once the service confirms.
func (s *Store) Escalate(ctx context.Context, id int64, level int, reason, requestedBy string) (domain.Complaint, error) {
	reason = strings.TrimSpace(reason)
	if level < 1 || reason == "" {
		return domain.Complaint{}, s.fail(ctx, opEscalate, id, apperrors.NewValidationError("escalation needs a level of at least 1 and a reason", nil))
	}
	if requestedBy == "" {
		requestedBy = s.identity.Email
	}
	rec, err := s.remote.Escalate(ctx, id, level, reason, requestedBy)
	if err != nil {
		s.resync(ctx, opEscalate)
		return domain.Complaint{}, s.fail(ctx, opEscalate, id, err)
	}

	var confirmedAt *time.Time
	if rec != nil {
		if confirmed, err := normalize.Complaint(*rec); err == nil {
			confirmedAt = confirmed.EscalatedAt
		}
	}
	s.patch(id, func(c *domain.Complaint) {
		c.Escalated = true
		c.EscalationLevel = level
		c.EscalationReason = reason
		if confirmedAt != nil {
			t := *confirmedAt
			c.EscalatedAt = &t
		}
	})
	return s.changed(ctx, opEscalate, id), nil
}

// AddNote appends the service's note, then re-fetches the working set.
func (s *Store) AddNote(ctx context.Context, id int64, content string, isPrivate bool) (domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Note{}, s.fail(ctx, opAddNote, id, apperrors.NewValidationError("note content is required", nil))
	}
	rec, err := s.remote.AddNote(ctx, id, content, isPrivate)
	if err != nil {
		s.resync(ctx, opAddNote)
		return domain.Note{}, s.fail(ctx, opAddNote, id, err)
	}
	note, err := normalize.Note(rec)
	if err != nil {
		s.resync(ctx, opAddNote)
		return domain.Note{}, s.fail(ctx, opAddNote, id, apperrors.NewMalformedResponse(opAddNote, err))
	}
	s.patch(id, func(c *domain.Complaint) { c.Notes = append(c.Notes, note) })
	s.publish(ctx, events.EventNoteAdded, id, events.NoteAddedPayload{Note: note})
	s.resync(ctx, opAddNote)
	return note, nil
}

// AddReply appends the service's reply, then re-fetches the working set.
func (s *Store) AddReply(ctx context.Context, id int64, content string, isAdminReply bool) (domain.Reply, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Reply{}, s.fail(ctx, opAddReply, id, apperrors.NewValidationError("reply content is required", nil))
	}
	rec, err := s.remote.AddReply(ctx, id, content, isAdminReply)
	if err != nil {
		s.resync(ctx, opAddReply)
		return domain.Reply{}, s.fail(ctx, opAddReply, id, err)
	}
	reply, err := normalize.Reply(rec)
	if err != nil {
		s.resync(ctx, opAddReply)
		return domain.Reply{}, s.fail(ctx, opAddReply, id, apperrors.NewMalformedResponse(opAddReply, err))
	}
	s.patch(id, func(c *domain.Complaint) { c.Replies = append(c.Replies, reply) })
	s.publish(ctx, events.EventReplyAdded, id, events.ReplyAddedPayload{Reply: reply})
	s.resync(ctx, opAddReply)
	return reply, nil
}

// patch applies fn to the local record with id, if present.
func (s *Store) patch(id int64, fn func(*domain.Complaint)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		fn(&s.complaints[i])
	}
}

// merge replaces the local record with the service's copy. Mutation answers
// may omit the thread; absent notes, replies and history keep the local ones.
func (s *Store) merge(rec remote.ComplaintRecord) error {
	updated, err := normalize.Complaint(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(updated.ID)
	if i < 0 {
		s.complaints = append(s.complaints, updated)
		return nil
	}
	local := s.complaints[i]
	if rec.Notes == nil {
		updated.Notes = local.Notes
	}
	if rec.Replies == nil {
		updated.Replies = local.Replies
	}
	if rec.StatusHistory == nil {
		updated.StatusHistory = local.StatusHistory
	}
	s.complaints[i] = updated
	return nil
}

// changed publishes the current record for id and returns a copy of it.
func (s *Store) changed(ctx context.Context, operation string, id int64) domain.Complaint {
	c, ok := s.Complaint(id)
	if !ok {
		return domain.Complaint{ID: id}
	}
	s.publish(ctx, events.EventComplaintUpdated, id, events.ComplaintChangedPayload{Operation: operation, Complaint: c.Clone()})
	return c
}
