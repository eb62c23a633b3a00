package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/resolveit/complaint-sync/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintsReplaced EventType = "complaints_replaced"
	EventComplaintCreated   EventType = "complaint_created"
	EventComplaintUpdated   EventType = "complaint_updated"
	EventNoteAdded          EventType = "note_added"
	EventReplyAdded         EventType = "reply_added"
	EventOfficersReplaced   EventType = "officers_replaced"
	EventOperationFailed    EventType = "operation_failed"
)

// Event is emitted by a session's store after its working set changes or an
// operation fails.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID int64       `json:"complaint_id,omitempty"`
	Actor       string      `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor string, complaintID int64, payload interface{}) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		ComplaintID: complaintID,
		Actor:       actor,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	}
}

// ComplaintsReplacedPayload carries the full working set after a fetch.
type ComplaintsReplacedPayload struct {
	Role       domain.Role        `json:"role"`
	Complaints []domain.Complaint `json:"complaints"`
	Rejected   int                `json:"rejected"`
}

// ComplaintChangedPayload carries the reconciled record.
type ComplaintChangedPayload struct {
	Operation string           `json:"operation"`
	Complaint domain.Complaint `json:"complaint"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	Note domain.Note `json:"note"`
}

// ReplyAddedPayload payload.
type ReplyAddedPayload struct {
	Reply domain.Reply `json:"reply"`
}

// OfficersReplacedPayload payload.
type OfficersReplacedPayload struct {
	Officers []domain.Officer `json:"officers"`
}

// OperationFailedPayload describes a failed store operation.
type OperationFailedPayload struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}
