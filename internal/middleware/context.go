package middleware

// Context keys used to store request metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)
