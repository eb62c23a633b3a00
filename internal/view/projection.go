package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/resolveit/complaint-sync/internal/domain"
)

const (
	LabelAuthority = "Authority"
	LabelCitizen   = "Citizen"
)

// ComplaintView is what a viewer is allowed to see of a complaint.
type ComplaintView struct {
	ID                 int64                    `json:"id"`
	ReferenceNumber    string                   `json:"referenceNumber,omitempty"`
	Title              string                   `json:"title"`
	Description        string                   `json:"description"`
	Category           string                   `json:"category"`
	Status             domain.ComplaintStatus   `json:"status"`
	Priority           domain.ComplaintPriority `json:"priority"`
	AssignedTo         string                   `json:"assignedTo,omitempty"`
	AssignedDepartment string                   `json:"assignedDepartment,omitempty"`
	AssignedOfficer    *domain.Officer          `json:"assignedOfficer,omitempty"`
	IsAnonymous        bool                     `json:"isAnonymous"`
	SubmittedBy        string                   `json:"submittedBy,omitempty"`
	SubmittedAt        time.Time                `json:"submittedAt"`
	CitizenName        string                   `json:"citizenName,omitempty"`
	User               *domain.UserRef          `json:"user,omitempty"`
	LastUpdatedAt      *time.Time               `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy      string                   `json:"lastUpdatedBy,omitempty"`
	Escalated          bool                     `json:"escalated"`
	EscalationLevel    int                      `json:"escalationLevel,omitempty"`
	EscalationReason   string                   `json:"escalationReason,omitempty"`
	EscalatedAt        *time.Time               `json:"escalatedAt,omitempty"`
	Attachments        []string                 `json:"attachments"`
	AttachmentCount    int                      `json:"attachmentCount"`
	Notes              []domain.Note            `json:"notes"`
	Replies            []ReplyView              `json:"replies"`
	Feedback           *domain.Feedback         `json:"feedback,omitempty"`
	StatusHistory      []domain.StatusChange    `json:"statusHistory"`
}

// ReplyView is a reply with its display label.
type ReplyView struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"authorName"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"createdAt"`
	IsAdminReply bool      `json:"isAdminReply"`
}

// ReplyLabel is "Authority" for admin replies, otherwise the author name or
// "Citizen". It does not depend on who is looking.
func ReplyLabel(r domain.Reply) string {
	if r.IsAdminReply {
		return LabelAuthority
	}
	if name := strings.TrimSpace(r.AuthorName); name != "" {
		return name
	}
	return LabelCitizen
}

// Project renders c for viewer. Anonymous complaints never carry the citizen's
// name or account, and only the submitter sees their own email. For everyone
// else citizen replies on them are labelled "Citizen". Private notes
// are dropped for citizens. Feedback reaches officers only when shared.
func Project(c domain.Complaint, viewer domain.Identity) ComplaintView {
	c = c.Clone()
	v := ComplaintView{
		ID:                 c.ID,
		ReferenceNumber:    c.ReferenceNumber,
		Title:              c.Title,
		Description:        c.Description,
		Category:           c.Category,
		Status:             c.Status,
		Priority:           c.Priority,
		AssignedTo:         c.AssignedTo,
		AssignedDepartment: c.AssignedDepartment,
		AssignedOfficer:    c.AssignedOfficer,
		IsAnonymous:        c.IsAnonymous,
		SubmittedBy:        c.SubmittedBy,
		SubmittedAt:        c.SubmittedAt,
		CitizenName:        c.CitizenName,
		User:               c.User,
		LastUpdatedAt:      c.LastUpdatedAt,
		LastUpdatedBy:      c.LastUpdatedBy,
		Escalated:          c.Escalated,
		EscalationLevel:    c.EscalationLevel,
		EscalationReason:   c.EscalationReason,
		EscalatedAt:        c.EscalatedAt,
		Attachments:        c.Attachments,
		AttachmentCount:    c.AttachmentCount,
		Notes:              VisibleNotes(c.Notes, viewer),
		Replies:            make([]ReplyView, 0, len(c.Replies)),
		Feedback:           c.Feedback,
		StatusHistory:      c.StatusHistory,
	}
	masked := c.IsAnonymous && !strings.EqualFold(viewer.Email, c.SubmittedBy)
	if c.IsAnonymous {
		v.CitizenName = ""
		v.User = nil
		if masked {
			v.SubmittedBy = ""
		}
	}
	if viewer.Role == domain.RoleOfficer && c.Feedback != nil && !c.Feedback.VisibleToOfficer {
		v.Feedback = nil
	}
	for _, r := range c.Replies {
		rv := ReplyView{
			ID:           r.ID,
			Content:      r.Content,
			AuthorName:   r.AuthorName,
			Label:        ReplyLabel(r),
			CreatedAt:    r.CreatedAt,
			IsAdminReply: r.IsAdminReply,
		}
		if masked && !r.IsAdminReply {
			rv.AuthorName = LabelCitizen
			rv.Label = LabelCitizen
		}
		v.Replies = append(v.Replies, rv)
	}
	return v
}

// ProjectAll renders every complaint for viewer.
func ProjectAll(cs []domain.Complaint, viewer domain.Identity) []ComplaintView {
	out := make([]ComplaintView, 0, len(cs))
	for _, c := range cs {
		out = append(out, Project(c, viewer))
	}
	return out
}

// VisibleNotes drops private notes unless viewer is an officer or admin.
func VisibleNotes(notes []domain.Note, viewer domain.Identity) []domain.Note {
	out := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsPrivate && !Can(ActionViewPrivateNotes, viewer) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Filter narrows a working set for list views. Zero fields match everything.
type Filter struct {
	Status   domain.ComplaintStatus
	Priority domain.ComplaintPriority
	Query    string
}

// Apply returns the complaints matching f, in input order.
func (f Filter) Apply(cs []domain.Complaint) []domain.Complaint {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Complaint, 0, len(cs))
	for _, c := range cs {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Priority != "" && c.Priority != f.Priority {
			continue
		}
		if query != "" && !matches(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c domain.Complaint, query string) bool {
	fields := []string{c.Title, c.Description, c.Category, c.ReferenceNumber, strconv.FormatInt(c.ID, 10)}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
