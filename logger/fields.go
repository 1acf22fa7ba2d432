package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUsername  = "username"
	FieldStrategy  = "strategy"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)
