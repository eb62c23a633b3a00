package domain

import "time"

// UserRef is the citizen account attached to a complaint.
type UserRef struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Complaint is the client-side working copy of a server-owned grievance.
type Complaint struct {
	ID                 int64             `json:"id"`
	ReferenceNumber    string            `json:"referenceNumber,omitempty"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Category           string            `json:"category"`
	Status             ComplaintStatus   `json:"status"`
	Priority           ComplaintPriority `json:"priority"`
	AssignedTo         string            `json:"assignedTo,omitempty"`
	AssignedDepartment string            `json:"assignedDepartment,omitempty"`
	AssignedOfficer    *Officer          `json:"assignedOfficer,omitempty"`
	IsAnonymous        bool              `json:"isAnonymous"`
	SubmittedBy        string            `json:"submittedBy,omitempty"`
	SubmittedAt        time.Time         `json:"submittedAt"`
	CitizenName        string            `json:"citizenName,omitempty"`
	User               *UserRef          `json:"user,omitempty"`
	LastUpdatedAt      *time.Time        `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy      string            `json:"lastUpdatedBy,omitempty"`
	Escalated          bool              `json:"escalated"`
	EscalationLevel    int               `json:"escalationLevel,omitempty"`
	EscalationReason   string            `json:"escalationReason,omitempty"`
	EscalatedAt        *time.Time        `json:"escalatedAt,omitempty"`
	Attachments        []string          `json:"attachments"`
	AttachmentCount    int               `json:"attachmentCount"`
	Notes              []Note            `json:"notes"`
	Replies            []Reply           `json:"replies"`
	Feedback           *Feedback         `json:"feedback,omitempty"`
	StatusHistory      []StatusChange    `json:"statusHistory"`
}

// Note is an officer/admin annotation. Private notes are hidden from citizens.
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsPrivate bool      `json:"isPrivate"`
}

// Reply is a message on the public complaint thread.
type Reply struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	AuthorName   string    `json:"authorName"`
	CreatedAt    time.Time `json:"createdAt"`
	IsAdminReply bool      `json:"isAdminReply"`
}

// Feedback is the citizen's post-resolution rating.
type Feedback struct {
	ID               int64     `json:"id"`
	Content          string    `json:"content"`
	Rating           int       `json:"rating,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	VisibleToOfficer bool      `json:"visibleToOfficer"`
}

// StatusChange is one entry of the server-kept status audit trail.
type StatusChange struct {
	ID        int64           `json:"id"`
	Status    ComplaintStatus `json:"status"`
	ChangedAt time.Time       `json:"changedAt"`
	ChangedBy string          `json:"changedBy,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the owner.
func (c Complaint) Clone() Complaint {
	out := c
	out.Attachments = append([]string(nil), c.Attachments...)
	out.Notes = append([]Note(nil), c.Notes...)
	out.Replies = append([]Reply(nil), c.Replies...)
	out.StatusHistory = append([]StatusChange(nil), c.StatusHistory...)
	if out.Attachments == nil {
		out.Attachments = []string{}
	}
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	if out.Replies == nil {
		out.Replies = []Reply{}
	}
	if out.StatusHistory == nil {
		out.StatusHistory = []StatusChange{}
	}
	if c.AssignedOfficer != nil {
		officer := *c.AssignedOfficer
		out.AssignedOfficer = &officer
	}
	if c.User != nil {
		user := *c.User
		out.User = &user
	}
	if c.Feedback != nil {
		feedback := *c.Feedback
		out.Feedback = &feedback
	}
	if c.LastUpdatedAt != nil {
		t := *c.LastUpdatedAt
		out.LastUpdatedAt = &t
	}
	if c.EscalatedAt != nil {
		t := *c.EscalatedAt
		out.EscalatedAt = &t
	}
	return out
}

// Upload is a file attached to a new complaint submission.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SubmitDetails carries the citizen-provided fields of a new complaint.
type SubmitDetails struct {
	Title       string
	Description string
	Category    string
	IsAnonymous bool
	Priority    ComplaintPriority
}
