package constants

// Session
const (
	SessionCookieName = "marketplace_session"
	ContextKeyUserID  = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const MinPasswordLength = 8

// Matching
const MaxMatchSuggestions = 5
