package dto

// CreateUserRequest is the body of POST /user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest is the body of PUT /user/:uuid.
type UpdateUserRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	IsAdmin bool   `json:"is_admin"`
}

// LoginRequest holds session credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TrackedTime summarizes the work recorded on a user's tasks.
type TrackedTime struct {
	UserID         string `json:"user_id"`
	TaskCount      int    `json:"task_count"`
	EstimatedTime  uint64 `json:"estimated_time"`
	TrackedSeconds int64  `json:"tracked_seconds"`
}
