package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventOperationFailed, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventOperationFailed, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventNoteAdded, func(ctx context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventOperationFailed, "jane@example.com", 7, nil))
	require.Error(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventComplaintUpdated, "olu@city.gov", 3, ComplaintChangedPayload{Operation: "assign"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, int64(3), e.ComplaintID)
}
