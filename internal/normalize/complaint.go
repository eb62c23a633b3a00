package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/remote"
)

const (
	DefaultTitle    = "Untitled Complaint"
	DefaultCategory = "General"

	LabelAuthority = "Authority"
	LabelCitizen   = "Citizen"
)

// ErrInvalidRecord flags a record that cannot be normalized.
var ErrInvalidRecord = errors.New("invalid complaint record")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// Complaint converts a service record into its canonical form, applying
// defaults for absent fields. Records with a non-positive id, an unknown
// status or priority, or an unparseable timestamp are rejected.
func Complaint(rec remote.ComplaintRecord) (domain.Complaint, error) {
	if rec.ID <= 0 {
		return domain.Complaint{}, invalid("id %d", rec.ID)
	}
	status := Status(rec.Status)
	if !status.Valid() {
		return domain.Complaint{}, invalid("complaint %d: status %q", rec.ID, rec.Status)
	}
	priority := Priority(rec.Priority)
	if !priority.Valid() {
		return domain.Complaint{}, invalid("complaint %d: priority %q", rec.ID, rec.Priority)
	}

	c := domain.Complaint{
		ID:                 rec.ID,
		ReferenceNumber:    rec.ReferenceNumber,
		Title:              orDefault(rec.Title, DefaultTitle),
		Description:        rec.Description,
		Category:           orDefault(rec.Category, DefaultCategory),
		Status:             status,
		Priority:           priority,
		AssignedTo:         strings.TrimSpace(rec.AssignedTo),
		AssignedDepartment: rec.AssignedDepartment,
		IsAnonymous:        firstBool(rec.IsAnonymous, rec.Anonymous),
		SubmittedBy:        rec.SubmittedBy,
		CitizenName:        rec.CitizenName,
		LastUpdatedBy:      rec.LastUpdatedBy,
		Escalated:          rec.Escalated,
		EscalationReason:   rec.EscalationReason,
		Attachments:        append([]string{}, rec.Attachments...),
	}

	var err error
	if c.SubmittedAt, err = ParseTime(rec.SubmittedAt); err != nil {
		return domain.Complaint{}, invalid("complaint %d: submittedAt: %v", rec.ID, err)
	}
	if c.LastUpdatedAt, err = parseOptionalTime(rec.LastUpdatedAt); err != nil {
		return domain.Complaint{}, invalid("complaint %d: lastUpdatedAt: %v", rec.ID, err)
	}
	if c.EscalatedAt, err = parseOptionalTime(rec.EscalatedAt); err != nil {
		return domain.Complaint{}, invalid("complaint %d: escalatedAt: %v", rec.ID, err)
	}

	if rec.User != nil {
		c.User = &domain.UserRef{ID: rec.User.ID, Email: rec.User.Email, Name: rec.User.Name}
		if c.SubmittedBy == "" {
			c.SubmittedBy = rec.User.Email
		}
		if c.CitizenName == "" {
			c.CitizenName = rec.User.Name
		}
	}
	if rec.AssignedOfficer != nil {
		officer := Officer(*rec.AssignedOfficer)
		c.AssignedOfficer = &officer
		if c.AssignedDepartment == "" {
			c.AssignedDepartment = officer.Department
		}
	}

	if rec.EscalationLevel != nil {
		if *rec.EscalationLevel < 0 {
			return domain.Complaint{}, invalid("complaint %d: escalationLevel %d", rec.ID, *rec.EscalationLevel)
		}
		c.EscalationLevel = *rec.EscalationLevel
	}
	if c.Escalated && c.EscalationLevel < 1 {
		c.EscalationLevel = 1
	}

	c.AttachmentCount = len(c.Attachments)
	if rec.AttachmentCount != nil && (*rec.AttachmentCount > 0 || len(c.Attachments) == 0) {
		c.AttachmentCount = *rec.AttachmentCount
	}
	if c.AttachmentCount < 0 {
		return domain.Complaint{}, invalid("complaint %d: attachmentCount %d", rec.ID, c.AttachmentCount)
	}

	if c.Notes, err = Notes(rec.Notes); err != nil {
		return domain.Complaint{}, invalid("complaint %d: %v", rec.ID, err)
	}
	if c.Replies, err = Replies(rec.Replies); err != nil {
		return domain.Complaint{}, invalid("complaint %d: %v", rec.ID, err)
	}
	if c.StatusHistory, err = statusHistory(rec.StatusHistory); err != nil {
		return domain.Complaint{}, invalid("complaint %d: %v", rec.ID, err)
	}
	if rec.Feedback != nil {
		fb, err := feedback(*rec.Feedback)
		if err != nil {
			return domain.Complaint{}, invalid("complaint %d: %v", rec.ID, err)
		}
		c.Feedback = &fb
	}
	return c, nil
}

// Complaints normalizes a list, returning the valid records and the errors of
// the rejected ones.
func Complaints(recs []remote.ComplaintRecord) ([]domain.Complaint, []error) {
	out := make([]domain.Complaint, 0, len(recs))
	var rejected []error
	for _, rec := range recs {
		c, err := Complaint(rec)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		out = append(out, c)
	}
	return out, rejected
}

// Note normalizes one note. The legacy "private" flag is honoured when
// "isPrivate" is absent.
func Note(rec remote.NoteRecord) (domain.Note, error) {
	createdAt, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return domain.Note{}, fmt.Errorf("note %d: %w", rec.ID, err)
	}
	return domain.Note{
		ID:        rec.ID,
		Content:   rec.Content,
		CreatedBy: rec.CreatedBy,
		CreatedAt: createdAt,
		IsPrivate: firstBool(rec.IsPrivate, rec.Private),
	}, nil
}

// Notes normalizes a note list; absent lists become empty.
func Notes(recs []remote.NoteRecord) ([]domain.Note, error) {
	out := make([]domain.Note, 0, len(recs))
	for _, rec := range recs {
		n, err := Note(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Reply normalizes one reply, resolving its author label.
func Reply(rec remote.ReplyRecord) (domain.Reply, error) {
	createdAt, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("reply %d: %w", rec.ID, err)
	}
	isAdmin := firstBool(rec.IsAdminReply, rec.AdminReply)
	return domain.Reply{
		ID:           rec.ID,
		Content:      rec.Content,
		CreatedBy:    rec.CreatedBy,
		AuthorName:   authorName(rec, isAdmin),
		CreatedAt:    createdAt,
		IsAdminReply: isAdmin,
	}, nil
}

// Replies normalizes a reply list; absent lists become empty.
func Replies(recs []remote.ReplyRecord) ([]domain.Reply, error) {
	out := make([]domain.Reply, 0, len(recs))
	for _, rec := range recs {
		r, err := Reply(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// authorName: explicit name, then creator, then a role-inferred label.
func authorName(rec remote.ReplyRecord, isAdmin bool) string {
	if name := strings.TrimSpace(rec.AuthorName); name != "" {
		return name
	}
	if by := strings.TrimSpace(rec.CreatedBy); by != "" {
		return by
	}
	if isAdmin {
		return LabelAuthority
	}
	return LabelCitizen
}

func feedback(rec remote.FeedbackRecord) (domain.Feedback, error) {
	createdAt, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("feedback: %w", err)
	}
	fb := domain.Feedback{
		ID:               rec.ID,
		Content:          rec.Content,
		CreatedAt:        createdAt,
		VisibleToOfficer: rec.VisibleToOfficer,
	}
	if rec.Rating != nil {
		fb.Rating = *rec.Rating
	}
	return fb, nil
}

func statusHistory(recs []remote.StatusHistoryRecord) ([]domain.StatusChange, error) {
	out := make([]domain.StatusChange, 0, len(recs))
	for _, rec := range recs {
		status := Status(rec.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("history %d: status %q", rec.ID, rec.Status)
		}
		changedAt, err := ParseTime(rec.ChangedAt)
		if err != nil {
			return nil, fmt.Errorf("history %d: %w", rec.ID, err)
		}
		out = append(out, domain.StatusChange{
			ID:        rec.ID,
			Status:    status,
			ChangedAt: changedAt,
			ChangedBy: rec.ChangedBy,
			Notes:     rec.Notes,
		})
	}
	return out, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func firstBool(flags ...*bool) bool {
	for _, f := range flags {
		if f != nil {
			return *f
		}
	}
	return false
}
