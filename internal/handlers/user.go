package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

type UserHandler struct {
	users *services.UserService
	tasks *services.TaskService
}

func NewUserHandler(users *services.UserService, tasks *services.TaskService) *UserHandler {
	return &UserHandler{
		users: users,
		tasks: tasks,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.users.List(c.Request.Context(), actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.users.Get(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser registers a new account. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.users.UpdateUser(c.Request.Context(), actor, uuidParam(c), req)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) BlockUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.users.Block(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UnblockUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.users.Unblock(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTrackedTime summarizes the work recorded on the user's tasks
func (h *UserHandler) GetTrackedTime(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	summary, err := h.tasks.GetUserTrackedTime(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Entity(summary))
}
