package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyProject = "project"
)

const (
	// MinPasswordLength is the minimum accepted password length at registration
	MinPasswordLength = 8

	// BearerSchema is the expected Authorization header prefix
	BearerSchema = "Bearer "
)
