package common

const (
	RequestIDHeader = "X-Request-Id"
	RoomIDHeader    = "X-Room-Id"

	DefaultUserID = "default_user"
)
