package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
	}
}

// ListTasks returns the tasks of active projects the current user takes part in
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tasks.List(c.Request.Context(), actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTask returns a specific task with its project, executor and checker
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tasks.Get(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := req.ToModel()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	resp, err := h.tasks.CreateTask(c.Request.Context(), actor, task)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := req.ToModel()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	resp, err := h.tasks.UpdateTask(c.Request.Context(), actor, uuidParam(c), task)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tasks.DeleteTask(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) RestoreTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tasks.RestoreTask(c.Request.Context(), actor, uuidParam(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
