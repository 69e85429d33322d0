package dto

import (
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// TaskRequest is the body of task update. Create embeds it with the project id.
type TaskRequest struct {
	Name          string              `json:"name" binding:"required,min=1,max=50"`
	Priority      models.TaskPriority `json:"priority" binding:"required,priority"`
	EstimatedTime uint32              `json:"estimated_time" binding:"required,min=1,max=4294967295"`
	Description   string              `json:"description" binding:"omitempty,min=1,max=5000"`
	Executor      string              `json:"executor" binding:"required,uuid"`
	Checker       string              `json:"checker" binding:"required,uuid"`
	TimeStart     string              `json:"time_start" binding:"omitempty,timestamp19"`
	TimeEnd       string              `json:"time_end" binding:"omitempty,timestamp19"`
}

// CreateTaskRequest is the body of POST /task.
type CreateTaskRequest struct {
	TaskRequest
	ProjectID string `json:"project_id" binding:"required,uuid"`
}

// ToModel converts the request, parsing the optional time bounds.
func (r TaskRequest) ToModel() (*models.Task, error) {
	start, err := utils.ParseTimestamp(r.TimeStart)
	if err != nil {
		return nil, fmt.Errorf("time_start: %w", err)
	}
	end, err := utils.ParseTimestamp(r.TimeEnd)
	if err != nil {
		return nil, fmt.Errorf("time_end: %w", err)
	}

	return &models.Task{
		Name:          r.Name,
		Priority:      r.Priority,
		EstimatedTime: r.EstimatedTime,
		Description:   r.Description,
		ExecutorID:    r.Executor,
		CheckerID:     r.Checker,
		TimeStart:     start,
		TimeEnd:       end,
	}, nil
}

// ToModel converts the request including its project.
func (r CreateTaskRequest) ToModel() (*models.Task, error) {
	task, err := r.TaskRequest.ToModel()
	if err != nil {
		return nil, err
	}
	task.ProjectID = r.ProjectID
	return task, nil
}

// GenerateTasksRequest is the free text the AI extracts task drafts from.
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required,min=1,max=10000"`
}
