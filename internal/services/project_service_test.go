package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

func TestProjectService_CreateProject(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	alice := env.createUser(t, "alice", false)

	resp, err := env.projects.CreateProject(ctx, &models.Project{Name: "Apollo", Description: "moon"}, alice)
	require.NoError(t, err)
	assert.Equal(t, "Project successfully created", resp.Message)

	result := resp.Result.(dto.WriteResult)
	assert.Equal(t, int64(1), result.Affected)

	got, err := env.projects.Get(ctx, alice, result.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", got.Item.Name)
	assert.True(t, got.Item.IsActive)
	require.NotNil(t, got.Item.Owner)
	assert.Equal(t, alice.ID, got.Item.Owner.ID)
	require.Len(t, got.Item.Participants, 1)
	assert.Equal(t, alice.ID, got.Item.Participants[0].ID)
}

func TestProjectService_CreateProjectIsAtomic(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	alice := env.createUser(t, "alice", false)

	require.NoError(t, env.db.Exec(`CREATE TRIGGER reject_participants BEFORE INSERT ON project_participants
BEGIN
	SELECT RAISE(ABORT, 'participants are read only');
END`).Error)

	_, err := env.projects.CreateProject(ctx, &models.Project{Name: "Apollo"}, alice)
	require.Error(t, err)
	assert.True(t, apierrors.IsBadRequest(err))
	assert.Equal(t, "An error occurred while creating project", err.Error())

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count, "the project row is rolled back with the owner enrollment")
}

func TestProjectService_Visibility(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	admin := env.createUser(t, "admin", true)
	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)

	projectID := env.createProject(t, alice, "Apollo")

	_, err := env.projects.Get(ctx, bob, projectID)
	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err))
	assert.Equal(t, "Project not found", err.Error())

	bobList, err := env.projects.List(ctx, bob)
	require.NoError(t, err)
	assert.NotNil(t, bobList.Items)
	assert.Empty(t, bobList.Items)

	adminList, err := env.projects.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, adminList.Items, 1)

	_, err = env.projects.Suspend(ctx, admin, projectID)
	require.NoError(t, err)

	_, err = env.projects.Get(ctx, alice, projectID)
	assert.True(t, apierrors.IsNotFound(err), "suspended projects are hidden from participants")

	got, err := env.projects.Get(ctx, admin, projectID)
	require.NoError(t, err)
	assert.False(t, got.Item.IsActive)
}

func TestProjectService_StatusToggle(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	admin := env.createUser(t, "admin", true)
	projectID := env.createProject(t, admin, "Apollo")

	_, err := env.projects.Activate(ctx, admin, projectID)
	require.Error(t, err)
	assert.True(t, apierrors.IsBadRequest(err))
	assert.Equal(t, MsgInvalidRequest, err.Error())

	resp, err := env.projects.Suspend(ctx, admin, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Project successfully suspended", resp.Message)

	_, err = env.projects.Suspend(ctx, admin, projectID)
	require.Error(t, err)
	assert.Equal(t, MsgInvalidRequest, err.Error())

	resp, err = env.projects.Activate(ctx, admin, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Project successfully activated", resp.Message)

	_, err = env.projects.Activate(ctx, admin, projectID)
	assert.True(t, apierrors.IsBadRequest(err))

	_, err = env.projects.Suspend(ctx, admin, uuid.NewString())
	assert.True(t, apierrors.IsBadRequest(err))
}

func TestProjectService_UpdateProject(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)
	projectID := env.createProject(t, alice, "Apollo")

	resp, err := env.projects.UpdateProject(ctx, alice, projectID, &models.Project{Name: "Artemis", Description: "again"})
	require.NoError(t, err)
	assert.Equal(t, "Project successfully updated", resp.Message)

	got, err := env.projects.Get(ctx, alice, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Artemis", got.Item.Name)
	assert.Equal(t, "again", got.Item.Description)
	assert.Equal(t, alice.ID, got.Item.OwnerID)

	_, err = env.projects.UpdateProject(ctx, alice, uuid.NewString(), &models.Project{Name: "x"})
	assert.True(t, apierrors.IsNotFound(err))

	_, err = env.projects.UpdateProject(ctx, bob, projectID, &models.Project{Name: "hijack"})
	assert.True(t, apierrors.IsNotFound(err))
}

func TestProjectService_AddParticipants(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)
	carol := env.createUser(t, "carol", false)
	projectID := env.createProject(t, alice, "Apollo")

	added, err := env.projects.AddParticipants(ctx, alice, projectID, []string{bob.ID, uuid.NewString(), bob.ID})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, bob.ID, added[0].ID)

	// adding again is a no-op
	added, err = env.projects.AddParticipants(ctx, alice, projectID, []string{bob.ID, alice.ID})
	require.NoError(t, err)
	assert.Len(t, added, 2)

	got, err := env.projects.Get(ctx, bob, projectID)
	require.NoError(t, err)
	assert.Len(t, got.Item.Participants, 2)

	_, err = env.projects.AddParticipants(ctx, carol, projectID, []string{carol.ID})
	assert.True(t, apierrors.IsNotFound(err))
}

func TestProjectService_AddParticipantsToSuspendedProject(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	admin := env.createUser(t, "admin", true)
	bob := env.createUser(t, "bob", false)
	projectID := env.createProject(t, admin, "Apollo")

	_, err := env.projects.Suspend(ctx, admin, projectID)
	require.NoError(t, err)

	_, err = env.projects.AddParticipants(ctx, admin, projectID, []string{bob.ID})
	require.Error(t, err)
	assert.True(t, apierrors.IsBadRequest(err))
	assert.Equal(t, MsgInvalidRequest, err.Error())
}

func TestProjectService_RemoveParticipants(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	ctx := context.Background()
	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)
	projectID := env.createProject(t, alice, "Apollo")

	_, err := env.projects.AddParticipants(ctx, alice, projectID, []string{bob.ID})
	require.NoError(t, err)

	_, err = env.projects.RemoveParticipants(ctx, alice, projectID, []string{alice.ID})
	require.Error(t, err)
	assert.Equal(t, "Project owner cannot be removed", err.Error())

	resp, err := env.projects.RemoveParticipants(ctx, alice, projectID, []string{bob.ID})
	require.NoError(t, err)
	assert.Equal(t, "Participants successfully removed", resp.Message)
	assert.Equal(t, int64(1), resp.Result.(dto.WriteResult).Affected)

	_, err = env.projects.Get(ctx, bob, projectID)
	assert.True(t, apierrors.IsNotFound(err))
}
