package domain

import "time"

// Alert is a user-visible failure notification.
type Alert struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
