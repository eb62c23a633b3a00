package remote

// Wire records mirror the Remote Complaint Service's JSON. Enum fields stay
// raw strings (UPPER_SNAKE on the wire) and timestamps stay unparsed; the
// normalize package turns them into domain values.

// ComplaintRecord is a complaint exactly as the service serializes it.
type ComplaintRecord struct {
	ID                 int64                 `json:"id"`
	ReferenceNumber    string                `json:"referenceNumber,omitempty"`
	Title              string                `json:"title,omitempty"`
	Description        string                `json:"description,omitempty"`
	Category           string                `json:"category,omitempty"`
	Status             string                `json:"status,omitempty"`
	Priority           string                `json:"priority,omitempty"`
	AssignedTo         string                `json:"assignedTo,omitempty"`
	AssignedDepartment string                `json:"assignedDepartment,omitempty"`
	AssignedOfficer    *OfficerRecord        `json:"assignedOfficer,omitempty"`
	IsAnonymous        *bool                 `json:"isAnonymous,omitempty"`
	Anonymous          *bool                 `json:"anonymous,omitempty"`
	SubmittedBy        string                `json:"submittedBy,omitempty"`
	SubmittedAt        string                `json:"submittedAt,omitempty"`
	CitizenName        string                `json:"citizenName,omitempty"`
	User               *UserRecord           `json:"user,omitempty"`
	LastUpdatedAt      string                `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy      string                `json:"lastUpdatedBy,omitempty"`
	Escalated          bool                  `json:"escalated,omitempty"`
	EscalationLevel    *int                  `json:"escalationLevel,omitempty"`
	EscalationReason   string                `json:"escalationReason,omitempty"`
	EscalatedAt        string                `json:"escalatedAt,omitempty"`
	Attachments        []string              `json:"attachments,omitempty"`
	AttachmentCount    *int                  `json:"attachmentCount,omitempty"`
	Notes              []NoteRecord          `json:"notes,omitempty"`
	Replies            []ReplyRecord         `json:"replies,omitempty"`
	Feedback           *FeedbackRecord       `json:"feedback,omitempty"`
	StatusHistory      []StatusHistoryRecord `json:"statusHistory,omitempty"`
}

// UserRecord is the citizen account nested in a complaint.
type UserRecord struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// NoteRecord is a note; older payloads serialize the flag as "private".
type NoteRecord struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	IsPrivate *bool  `json:"isPrivate,omitempty"`
	Private   *bool  `json:"private,omitempty"`
}

// ReplyRecord is a reply; older payloads serialize the flag as "adminReply".
type ReplyRecord struct {
	ID           int64  `json:"id"`
	Content      string `json:"content"`
	CreatedBy    string `json:"createdBy,omitempty"`
	AuthorName   string `json:"authorName,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	IsAdminReply *bool  `json:"isAdminReply,omitempty"`
	AdminReply   *bool  `json:"adminReply,omitempty"`
}

// FeedbackRecord is the citizen's post-resolution feedback.
type FeedbackRecord struct {
	ID               int64  `json:"id"`
	Content          string `json:"content"`
	Rating           *int   `json:"rating,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	VisibleToOfficer bool   `json:"visibleToOfficer,omitempty"`
}

// StatusHistoryRecord is one status audit entry.
type StatusHistoryRecord struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	ChangedAt string `json:"changedAt,omitempty"`
	ChangedBy string `json:"changedBy,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// OfficerRecord is an approved officer.
type OfficerRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// PendingOfficerRecord is an officer registration awaiting approval.
type PendingOfficerRecord struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department,omitempty"`
	Approved       bool   `json:"approved"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}

// AnalyticsRecord is the admin analytics aggregate.
type AnalyticsRecord struct {
	TotalComplaints   int64            `json:"totalComplaints"`
	Pending           int64            `json:"pending"`
	Assigned          int64            `json:"assigned"`
	InProgress        int64            `json:"inProgress"`
	Resolved          int64            `json:"resolved"`
	HighPriority      int64            `json:"highPriority"`
	Officers          int64            `json:"officers"`
	Workload          map[string]int64 `json:"workload"`
	PriorityBreakdown map[string]int64 `json:"priorityBreakdown"`
	StatusBreakdown   map[string]int64 `json:"statusBreakdown"`
}

// AuthRecord is returned by login, register and me.
type AuthRecord struct {
	Token string `json:"token,omitempty"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SubmitRequest is the JSON body (or multipart "data" part) of a submission.
type SubmitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsAnonymous bool   `json:"isAnonymous"`
	Priority    string `json:"priority,omitempty"`
}

// RegisterRequest is the account registration body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// File is one multipart file part.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type statusUpdateRequest struct {
	Status      string `json:"status"`
	RequestedBy string `json:"requestedBy,omitempty"`
}

type priorityUpdateRequest struct {
	Priority string `json:"priority"`
}

type assignRequest struct {
	OfficerEmail string `json:"officerEmail"`
}

type escalateRequest struct {
	Level       int    `json:"level"`
	Reason      string `json:"reason"`
	RequestedBy string `json:"requestedBy,omitempty"`
}

type noteRequest struct {
	Content   string `json:"content"`
	IsPrivate bool   `json:"isPrivate"`
}

type replyRequest struct {
	Content      string `json:"content"`
	IsAdminReply bool   `json:"isAdminReply"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type resetApplyRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
