package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService provides business logic for user administration.
type UserService struct {
	*CrudService[models.User]
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		CrudService: NewCrudService[models.User](userRepo, "User", func(u *models.User) string { return u.ID }),
		userRepo:    userRepo,
	}
}

// CreateUser hashes the password and stores an active user.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.ActionResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.ActionResponse{}, apierrors.NewBadRequest(s.failure("creating"))
	}

	return s.Create(ctx, &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	})
}

// UpdateUser overwrites name, email and role of a visible user.
func (s *UserService) UpdateUser(ctx context.Context, actor *models.User, id string, req dto.UpdateUserRequest) (dto.ActionResponse, error) {
	return s.Update(ctx, actor, id, &models.User{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
}

// Block deactivates a user. Actors cannot block themselves.
func (s *UserService) Block(ctx context.Context, actor *models.User, id string) (dto.ActionResponse, error) {
	if actor.ID == id {
		return dto.ActionResponse{}, apierrors.NewBadRequest("You cannot block yourself")
	}
	return s.SetStatus(ctx, actor, id, false, "blocked", "blocking")
}

// Unblock reactivates a blocked user.
func (s *UserService) Unblock(ctx context.Context, actor *models.User, id string) (dto.ActionResponse, error) {
	return s.SetStatus(ctx, actor, id, true, "unblocked", "unblocking")
}

// FindActive resolves a session user. Blocked users yield ErrUserNotFound.
func (s *UserService) FindActive(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
