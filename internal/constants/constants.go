package constants

// Session and context keys
const (
	SessionCookieName = "project_session"
	ContextKeyUserID  = "user_id"
	ContextKeyActor   = "actor"
	ContextKeyRequest = "request_id"
)

// Path parameters
const (
	ParamUUID = "uuid"
)

// TimestampLayout is the wire format of task time bounds (19 characters).
const TimestampLayout = "2006-01-02 15:04:05"

const (
	MinPasswordLength   = 8
	MaxAIGeneratedTasks = 20
	SessionMaxAge       = 86400 * 7
)
