package dto

import (
	"time"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/view"
)

// SubmitComplaintRequest payload. For multipart submissions the same fields
// arrive as form values next to the "files" parts.
type SubmitComplaintRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	IsAnonymous bool   `json:"isAnonymous" form:"isAnonymous"`
	Priority    string `json:"priority" form:"priority"`
}

// StatusRequest payload.
type StatusRequest struct {
	Status string `json:"status"`
}

// PriorityRequest payload.
type PriorityRequest struct {
	Priority string `json:"priority"`
}

// AssignRequest payload.
type AssignRequest struct {
	OfficerEmail string `json:"officerEmail"`
}

// EscalateRequest payload.
type EscalateRequest struct {
	Level  int    `json:"level"`
	Reason string `json:"reason"`
}

// NoteRequest payload.
type NoteRequest struct {
	Content   string `json:"content"`
	IsPrivate bool   `json:"isPrivate"`
}

// ReplyRequest payload. Whether the reply is an authority reply follows from
// the caller's role.
type ReplyRequest struct {
	Content string `json:"content"`
}

// ComplaintListResponse is the list view of a working set.
type ComplaintListResponse struct {
	Complaints []view.ComplaintView `json:"complaints"`
	Stats      view.Stats           `json:"stats"`
	Loaded     bool                 `json:"loaded"`
	SyncedAt   *time.Time           `json:"syncedAt,omitempty"`
}

// ComplaintDetailResponse is one complaint with its timeline.
type ComplaintDetailResponse struct {
	Complaint view.ComplaintView   `json:"complaint"`
	Timeline  []view.TimelineEntry `json:"timeline"`
}

// DashboardResponse is the role-selected dashboard composition.
type DashboardResponse struct {
	User      IdentityResponse     `json:"user"`
	Dashboard view.Dashboard       `json:"dashboard"`
	Stats     view.Stats           `json:"stats"`
	Recent    []view.ComplaintView `json:"recent"`
	Workload  *domain.Workload     `json:"workload,omitempty"`
	Alerts    []domain.Alert       `json:"alerts"`
}
