package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	*Store[models.Task]
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{
		Store: NewStore[models.Task](db, database.TaskRule,
			"name", "priority", "estimated_time", "description",
			"executor_id", "checker_id", "time_start", "time_end",
		),
		db: db,
	}
}

// ListActiveByExecutor lists active tasks assigned to a user as executor,
// limited to the tasks actor can see
func (r *GormTaskRepository) ListActiveByExecutor(ctx context.Context, actor *models.User, userID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Scopes(database.TaskRule.Filter(actor, "")).
		Where("tasks.executor_id = ? AND tasks.is_active = ?", userID, true).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
