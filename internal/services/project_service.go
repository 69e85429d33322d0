package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	*CrudService[models.Project]
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		CrudService: NewCrudService[models.Project](projectRepo, "Project", func(p *models.Project) string { return p.ID }),
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProject creates an active project owned by author. The owner is also
// enrolled as a participant so the project stays visible to them.
func (s *ProjectService) CreateProject(ctx context.Context, project *models.Project, author *models.User) (dto.ActionResponse, error) {
	project.ID = ""
	project.OwnerID = author.ID
	project.IsActive = true

	if err := s.projectRepo.CreateWithOwner(ctx, project); err != nil {
		return dto.ActionResponse{}, apierrors.NewBadRequest(s.failure("creating"))
	}

	return s.created(project), nil
}

// UpdateProject overwrites name and description of a visible project.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *models.User, id string, project *models.Project) (dto.ActionResponse, error) {
	return s.Update(ctx, actor, id, project)
}

// Suspend logically deletes an active project.
func (s *ProjectService) Suspend(ctx context.Context, actor *models.User, id string) (dto.ActionResponse, error) {
	return s.SetStatus(ctx, actor, id, false, "suspended", "suspending")
}

// Activate restores a suspended project.
func (s *ProjectService) Activate(ctx context.Context, actor *models.User, id string) (dto.ActionResponse, error) {
	return s.SetStatus(ctx, actor, id, true, "activated", "activating")
}

// AddParticipants enrolls the existing users among userIDs and returns them.
// Unknown ids are dropped; users already enrolled are left as they are.
func (s *ProjectService) AddParticipants(ctx context.Context, actor *models.User, projectID string, userIDs []string) ([]models.User, error) {
	project, err := s.requireActive(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByIDs(ctx, uniqueStrings(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	if err := s.projectRepo.AddParticipants(ctx, project.ID, ids); err != nil {
		return nil, apierrors.NewBadRequest("An error occurred while adding participants")
	}

	return users, nil
}

// RemoveParticipants unlinks users from a project. The owner cannot be removed.
func (s *ProjectService) RemoveParticipants(ctx context.Context, actor *models.User, projectID string, userIDs []string) (dto.ActionResponse, error) {
	project, err := s.requireActive(ctx, actor, projectID)
	if err != nil {
		return dto.ActionResponse{}, err
	}

	ids := uniqueStrings(userIDs)
	for _, id := range ids {
		if id == project.OwnerID {
			return dto.ActionResponse{}, apierrors.NewBadRequest("Project owner cannot be removed")
		}
	}

	affected, err := s.projectRepo.RemoveParticipants(ctx, project.ID, ids)
	if err != nil {
		return dto.ActionResponse{}, apierrors.NewBadRequest("An error occurred while removing participants")
	}

	return dto.Action("Participants successfully removed", dto.WriteResult{
		ID:       project.ID,
		Affected: affected,
	}), nil
}

// requireActive loads a visible project and rejects suspended ones.
func (s *ProjectService) requireActive(ctx context.Context, actor *models.User, projectID string) (*models.Project, error) {
	project, err := s.FindRaw(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, s.notFound()
	}
	if !project.IsActive {
		return nil, apierrors.NewBadRequest(MsgInvalidRequest)
	}
	return project, nil
}

// uniqueStrings removes duplicate values, keeping the first occurrence
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
