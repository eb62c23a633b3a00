package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/domain"
	"github.com/resolveit/complaint-sync/internal/events"
)

const defaultAlertBuffer = 50

// AlertService buffers one session's failure notifications until a view
// drains them. The oldest alert is dropped when the buffer is full.
type AlertService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	size       int

	mu     sync.Mutex
	alerts []domain.Alert
}

// NewAlertService creates the service.
func NewAlertService(dispatcher events.Dispatcher, logger *zap.Logger, size int) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = defaultAlertBuffer
	}
	return &AlertService{dispatcher: dispatcher, logger: logger, size: size}
}

// RegisterHandlers subscribes to events.
func (a *AlertService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventOperationFailed, a.handleOperationFailed)
}

func (a *AlertService) handleOperationFailed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OperationFailedPayload)
	if !ok {
		return nil
	}
	a.logger.Info("OperationFailed",
		zap.String("operation", payload.Operation),
		zap.Int64("complaint_id", event.ComplaintID),
		zap.String("code", payload.Code))

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.alerts) == a.size {
		a.alerts = a.alerts[1:]
	}
	a.alerts = append(a.alerts, domain.Alert{
		ID:        event.ID,
		Operation: payload.Operation,
		Message:   payload.Message,
		CreatedAt: event.Timestamp,
	})
	return nil
}

// Drain returns the buffered alerts oldest first and empties the buffer.
func (a *AlertService) Drain() []domain.Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.alerts
	a.alerts = nil
	if out == nil {
		out = []domain.Alert{}
	}
	return out
}

// Pending returns the number of undrained alerts.
func (a *AlertService) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.alerts)
}
