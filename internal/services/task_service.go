package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// MsgInvalidTaskUsers is returned when a task references an unknown executor or checker.
const MsgInvalidTaskUsers = "Executor and checker must be existing users"

// TaskDraftGenerator turns free text into unsaved task drafts.
type TaskDraftGenerator interface {
	GenerateTaskDrafts(ctx context.Context, text string) ([]TaskDraft, error)
}

// TaskService handles task business logic
type TaskService struct {
	*CrudService[models.Task]
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	projects *ProjectService
	users    *UserService
	drafts   TaskDraftGenerator
}

// NewTaskService creates a new TaskService. drafts may be nil.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	projects *ProjectService,
	users *UserService,
	drafts TaskDraftGenerator,
) *TaskService {
	return &TaskService{
		CrudService: NewCrudService[models.Task](taskRepo, "Task", func(t *models.Task) string { return t.ID }),
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		projects:    projects,
		users:       users,
		drafts:      drafts,
	}
}

// CreateTask adds a task to a project the actor can see.
func (s *TaskService) CreateTask(ctx context.Context, actor *models.User, task *models.Task) (dto.ActionResponse, error) {
	if _, err := s.projects.requireActive(ctx, actor, task.ProjectID); err != nil {
		return dto.ActionResponse{}, err
	}

	if err := s.ensureUsersExist(ctx, task.ExecutorID, task.CheckerID); err != nil {
		return dto.ActionResponse{}, err
	}

	task.ID = ""
	task.IsActive = true
	return s.Create(ctx, task)
}

// UpdateTask overwrites the editable fields of a visible task.
func (s *TaskService) UpdateTask(ctx context.Context, actor *models.User, id string, task *models.Task) (dto.ActionResponse, error) {
	if err := s.ensureUsersExist(ctx, task.ExecutorID, task.CheckerID); err != nil {
		return dto.ActionResponse{}, err
	}

	return s.Update(ctx, actor, id, task)
}

// DeleteTask logically deletes a task.
func (s *TaskService) DeleteTask(ctx context.Context, actor *models.User, id string) (dto.ActionResponse, error) {
	return s.SetStatus(ctx, actor, id, false, "deleted", "deleting")
}

// RestoreTask brings back a deleted task.
func (s *TaskService) RestoreTask(ctx context.Context, actor *models.User, id string) (dto.ActionResponse, error) {
	return s.SetStatus(ctx, actor, id, true, "restored", "restoring")
}

// GetUserTrackedTime sums estimates and recorded time of the active tasks a
// visible user executes. Only tasks the actor can see are counted.
func (s *TaskService) GetUserTrackedTime(ctx context.Context, actor *models.User, userID string) (dto.TrackedTime, error) {
	user, err := s.users.FindRaw(ctx, actor, userID)
	if err != nil {
		return dto.TrackedTime{}, err
	}
	if user == nil {
		return dto.TrackedTime{}, s.users.notFound()
	}

	tasks, err := s.taskRepo.ListActiveByExecutor(ctx, actor, user.ID)
	if err != nil {
		return dto.TrackedTime{}, fmt.Errorf("failed to list tracked tasks: %w", err)
	}

	summary := dto.TrackedTime{
		UserID:    user.ID,
		TaskCount: len(tasks),
	}
	for i := range tasks {
		summary.EstimatedTime += uint64(tasks[i].EstimatedTime)
		summary.TrackedSeconds += int64(tasks[i].TrackedDuration().Seconds())
	}

	return summary, nil
}

// GenerateTaskDrafts asks the AI for task drafts for a visible project.
// Drafts are normalized but never stored.
func (s *TaskService) GenerateTaskDrafts(ctx context.Context, actor *models.User, projectID, text string) ([]TaskDraft, error) {
	if s.drafts == nil {
		return nil, apierrors.NewServiceUnavailable("AI service is not configured")
	}

	if _, err := s.projects.requireActive(ctx, actor, projectID); err != nil {
		return nil, err
	}

	drafts, err := s.drafts.GenerateTaskDrafts(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]TaskDraft, 0, len(drafts))
	for _, d := range drafts {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			continue
		}
		if r := []rune(d.Name); len(r) > 50 {
			d.Name = string(r[:50])
		}
		if !d.Priority.Valid() {
			d.Priority = models.PriorityMedium
		}
		if d.EstimatedTime == 0 {
			d.EstimatedTime = 1
		}
		valid = append(valid, d)
	}

	return valid, nil
}

// ensureUsersExist verifies that every referenced user exists
func (s *TaskService) ensureUsersExist(ctx context.Context, ids ...string) error {
	unique := uniqueStrings(ids)

	users, err := s.userRepo.FindByIDs(ctx, unique)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if len(users) != len(unique) {
		return apierrors.NewBadRequest(MsgInvalidTaskUsers)
	}
	return nil
}
