package worker

// HandlerRegistrar subscribes a service to its event stream.
type HandlerRegistrar interface {
	RegisterHandlers()
}

// StartAlertWorker registers alert handlers for one session.
func StartAlertWorker(alerts HandlerRegistrar) {
	if alerts == nil {
		return
	}
	alerts.RegisterHandlers()
}
