package constant

const (
	ContextKeyRequestID = "requestid"
	ContextKeyUserID    = "userid"

	RequestIDHeader = "X-Request-ID"
)
