package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

const testPassword = "supersecret"

type serviceTestEnv struct {
	db       *gorm.DB
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	auth     *AuthService
}

func setupServiceTestEnv(t *testing.T, drafts TaskDraftGenerator) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	users := NewUserService(userRepo)
	projects := NewProjectService(projectRepo, userRepo)

	return serviceTestEnv{
		db:       db,
		users:    users,
		projects: projects,
		tasks:    NewTaskService(taskRepo, userRepo, projects, users, drafts),
		auth:     NewAuthService(userRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, name string, admin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      admin,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env serviceTestEnv) createProject(t *testing.T, owner *models.User, name string) string {
	t.Helper()

	resp, err := env.projects.CreateProject(context.Background(), &models.Project{Name: name}, owner)
	require.NoError(t, err)
	return resultID(t, resp)
}

func (env serviceTestEnv) createTask(t *testing.T, actor *models.User, projectID string, estimate uint32) string {
	t.Helper()

	resp, err := env.tasks.CreateTask(context.Background(), actor, &models.Task{
		ProjectID:     projectID,
		Name:          "task",
		Priority:      models.PriorityHigh,
		EstimatedTime: estimate,
		ExecutorID:    actor.ID,
		CheckerID:     actor.ID,
	})
	require.NoError(t, err)
	return resultID(t, resp)
}

func resultID(t *testing.T, resp dto.ActionResponse) string {
	t.Helper()

	result, ok := resp.Result.(dto.WriteResult)
	require.True(t, ok, "unexpected result type %T", resp.Result)
	require.NotEmpty(t, result.ID)
	return result.ID
}
