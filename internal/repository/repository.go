package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// Gateway is the scoped persistence contract shared by every entity.
// Reads, updates and status changes only touch rows visible to actor.
type Gateway[T any] interface {
	// Find returns every visible row, newest first
	Find(ctx context.Context, actor *models.User) ([]T, error)

	// FindOne returns gorm.ErrRecordNotFound when the row is missing or hidden
	FindOne(ctx context.Context, actor *models.User, id string) (*T, error)

	Insert(ctx context.Context, entity *T) error

	// Update writes the updatable columns and reports the matched rows
	Update(ctx context.Context, actor *models.User, id string, entity *T) (int64, error)

	// UpdateStatus flips is_active only if it currently equals !status
	UpdateStatus(ctx context.Context, actor *models.User, id string, status bool) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Gateway[models.Project]

	// CreateWithOwner inserts the project and enrolls its owner atomically
	CreateWithOwner(ctx context.Context, project *models.Project) error

	// AddParticipants links users to a project, ignoring existing links
	AddParticipants(ctx context.Context, projectID string, userIDs []string) error

	// RemoveParticipants unlinks users from a project
	RemoveParticipants(ctx context.Context, projectID string, userIDs []string) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Gateway[models.User]

	// FindByEmail finds a user by email regardless of status
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindActiveByID finds a user who is not blocked
	FindActiveByID(ctx context.Context, id string) (*models.User, error)

	// FindByIDs returns the users that exist among ids
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Gateway[models.Task]

	// ListActiveByExecutor lists the active tasks executed by a user that actor can see
	ListActiveByExecutor(ctx context.Context, actor *models.User, userID string) ([]models.Task, error)
}
