package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// MsgInvalidRequest is returned when a status toggle finds nothing to flip.
const MsgInvalidRequest = "Invalid request"

// CrudService implements list, get, create, update and status toggles for any
// entity behind a scoped Gateway. Entity services embed it.
type CrudService[T any] struct {
	gateway repository.Gateway[T]
	entity  string
	idOf    func(*T) string
}

// NewCrudService creates a CrudService. entity is the display name used in
// messages ("Project"); idOf extracts the primary key after insert.
func NewCrudService[T any](gateway repository.Gateway[T], entity string, idOf func(*T) string) *CrudService[T] {
	return &CrudService[T]{
		gateway: gateway,
		entity:  entity,
		idOf:    idOf,
	}
}

// List returns every row visible to actor, newest first.
func (s *CrudService[T]) List(ctx context.Context, actor *models.User) (dto.ListResponse[T], error) {
	rows, err := s.gateway.Find(ctx, actor)
	if err != nil {
		return dto.ListResponse[T]{}, fmt.Errorf("failed to list %s: %w", s.lower(), err)
	}
	return dto.List(rows), nil
}

// Get returns one visible row or NotFound.
func (s *CrudService[T]) Get(ctx context.Context, actor *models.User, id string) (dto.EntityResponse[T], error) {
	row, err := s.FindRaw(ctx, actor, id)
	if err != nil {
		return dto.EntityResponse[T]{}, err
	}
	if row == nil {
		return dto.EntityResponse[T]{}, s.notFound()
	}
	return dto.Entity(*row), nil
}

// FindRaw returns the visible row itself, or nil when it is missing or hidden.
func (s *CrudService[T]) FindRaw(ctx context.Context, actor *models.User, id string) (*T, error) {
	row, err := s.gateway.FindOne(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s: %w", s.lower(), err)
	}
	return row, nil
}

// Create inserts entity. The caller has already attributed ownership.
func (s *CrudService[T]) Create(ctx context.Context, entity *T) (dto.ActionResponse, error) {
	if err := s.gateway.Insert(ctx, entity); err != nil {
		return dto.ActionResponse{}, apierrors.NewBadRequest(s.failure("creating"))
	}

	return s.created(entity), nil
}

func (s *CrudService[T]) created(entity *T) dto.ActionResponse {
	return dto.Action(s.entity+" successfully created", dto.WriteResult{
		ID:       s.idOf(entity),
		Affected: 1,
	})
}

// Update writes entity over the visible row id. Zero matched rows is NotFound.
func (s *CrudService[T]) Update(ctx context.Context, actor *models.User, id string, entity *T) (dto.ActionResponse, error) {
	affected, err := s.gateway.Update(ctx, actor, id, entity)
	if err != nil {
		return dto.ActionResponse{}, apierrors.NewBadRequest(s.failure("updating"))
	}
	if affected == 0 {
		return dto.ActionResponse{}, s.notFound()
	}

	return dto.Action(s.entity+" successfully updated", dto.WriteResult{
		ID:       id,
		Affected: affected,
	}), nil
}

// SetStatus moves the row to status, which is only allowed from !status.
// completed and progressing are the verbs used in messages ("suspended", "suspending").
func (s *CrudService[T]) SetStatus(ctx context.Context, actor *models.User, id string, status bool, completed, progressing string) (dto.ActionResponse, error) {
	affected, err := s.gateway.UpdateStatus(ctx, actor, id, status)
	if err != nil {
		return dto.ActionResponse{}, apierrors.NewBadRequest(s.failure(progressing))
	}
	if affected == 0 {
		return dto.ActionResponse{}, apierrors.NewBadRequest(MsgInvalidRequest)
	}

	return dto.Action(fmt.Sprintf("%s successfully %s", s.entity, completed), dto.WriteResult{
		ID:       id,
		Affected: affected,
	}), nil
}

func (s *CrudService[T]) notFound() error {
	return apierrors.NewNotFound(s.entity + " not found")
}

func (s *CrudService[T]) failure(progressing string) string {
	return fmt.Sprintf("An error occurred while %s %s", progressing, s.lower())
}

func (s *CrudService[T]) lower() string {
	return strings.ToLower(s.entity)
}
