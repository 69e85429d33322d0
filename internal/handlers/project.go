package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

type ProjectHandler struct {
	projects *services.ProjectService
	tasks    *services.TaskService
}

func NewProjectHandler(projects *services.ProjectService, tasks *services.TaskService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		tasks:    tasks,
	}
}

// ListProjects returns the projects visible to the current user
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.projects.List(c.Request.Context(), actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProject returns one project with its owner and participants
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.projects.Get(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.CreateProject(c.Request.Context(), req.ToModel(), actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.UpdateProject(c.Request.Context(), actor, uuidParam(c), req.ToModel())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) SuspendProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.projects.Suspend(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) ActivateProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.projects.Activate(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddParticipants links existing users to the project and returns them
func (h *ProjectHandler) AddParticipants(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ParticipantsRequest
	if !bindJSON(c, &req) {
		return
	}

	users, err := h.projects.AddParticipants(c.Request.Context(), actor, uuidParam(c), req.UserIDs)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(users))
}

func (h *ProjectHandler) RemoveParticipants(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ParticipantsRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.RemoveParticipants(c.Request.Context(), actor, uuidParam(c), req.UserIDs)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateTasks returns AI task drafts for the project. Nothing is stored.
func (h *ProjectHandler) GenerateTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	drafts, err := h.tasks.GenerateTaskDrafts(c.Request.Context(), actor, uuidParam(c), req.Text)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(drafts))
}
