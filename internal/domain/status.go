package domain

// ComplaintStatus enumerates workflow states in canonical lowercase-hyphenated form.
type ComplaintStatus string

const (
	StatusPending     ComplaintStatus = "pending"
	StatusAssigned    ComplaintStatus = "assigned"
	StatusUnderReview ComplaintStatus = "under-review"
	StatusInProgress  ComplaintStatus = "in-progress"
	StatusEscalated   ComplaintStatus = "escalated"
	StatusResolved    ComplaintStatus = "resolved"
	StatusClosed      ComplaintStatus = "closed"
)

// ComplaintStatuses lists every canonical status in workflow order.
var ComplaintStatuses = []ComplaintStatus{
	StatusPending,
	StatusAssigned,
	StatusUnderReview,
	StatusInProgress,
	StatusEscalated,
	StatusResolved,
	StatusClosed,
}

// Valid reports whether s is one of the canonical statuses.
func (s ComplaintStatus) Valid() bool {
	for _, known := range ComplaintStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ComplaintPriority enumerates urgency levels in canonical lowercase form.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
	PriorityUrgent ComplaintPriority = "urgent"
)

// ComplaintPriorities lists every canonical priority from least to most urgent.
var ComplaintPriorities = []ComplaintPriority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

// Valid reports whether p is one of the canonical priorities.
func (p ComplaintPriority) Valid() bool {
	for _, known := range ComplaintPriorities {
		if p == known {
			return true
		}
	}
	return false
}
