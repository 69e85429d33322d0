package dto

import "github.com/yukikurage/project-tracker-api/internal/models"

// ProjectRequest is the body of project create and full update.
type ProjectRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

// ToModel builds the project fields written by create and update.
func (r ProjectRequest) ToModel() *models.Project {
	return &models.Project{
		Name:        r.Name,
		Description: r.Description,
	}
}

// ParticipantsRequest lists users to link to or unlink from a project.
type ParticipantsRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
}
