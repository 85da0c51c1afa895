package common

type contextKey string

const (
	RequestIDKey       contextKey = "request_id"
	IdentityContextKey contextKey = "identity"
	SemaphoreKey       contextKey = "ws_semaphore"
	LatencyContextKey  contextKey = "__execution_time"
)
