package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	*Store[models.Project]
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{
		Store: NewStore[models.Project](db, database.ProjectRule, "name", "description"),
		db:    db,
	}
}

// CreateWithOwner inserts the project and the owner's membership in one transaction
func (r *GormProjectRepository) CreateWithOwner(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return insertParticipants(tx, project.ID, []string{project.OwnerID})
	})
}

// AddParticipants inserts all membership rows in one statement
func (r *GormProjectRepository) AddParticipants(ctx context.Context, projectID string, userIDs []string) error {
	return insertParticipants(r.db.WithContext(ctx), projectID, userIDs)
}

func insertParticipants(db *gorm.DB, projectID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]models.ProjectParticipant, len(userIDs))
	for i, userID := range userIDs {
		rows[i] = models.ProjectParticipant{
			ProjectID: projectID,
			UserID:    userID,
		}
	}

	return db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// RemoveParticipants deletes membership rows
func (r *GormProjectRepository) RemoveParticipants(ctx context.Context, projectID string, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id IN ?", projectID, userIDs).
		Delete(&models.ProjectParticipant{})
	return result.RowsAffected, result.Error
}
