package constants

// User roles
const (
	RoleClient = 0
	RoleAdmin  = 1
)

// Context keys set by the auth middleware
const (
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxSessionID = "sessionId"
)

// Cache keys
const (
	CacheKeyRooms       = "rooms:all"
	CacheKeyRoomsPrefix = "rooms:"
	CacheKeyServices    = "services:all"
	CacheKeyHotelConfig = "hotel:configuration"
)

// Date layout used by the API
const DateLayout = "2006-01-02"

// Pagination defaults
const (
	DefaultPage  = 0
	DefaultLimit = 10
)
