package controllers

import (
	"net/http"

	"github.com/craftloop/craftloop-backend/api/middleware"
	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/api/validators"
	"github.com/craftloop/craftloop-backend/internal/tasks"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type TasksController struct {
	svc  *tasks.Service
	logg *logger.Logger
}

func NewTasksController(svc *tasks.Service, logg *logger.Logger) *TasksController {
	return &TasksController{svc: svc, logg: logg}
}

func (c *TasksController) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req tasks.CreateTaskRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Create(r.Context(), projectID, req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *TasksController) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	rows, err := c.svc.ListByProject(r.Context(), projectID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, rows)
}

// ListMine returns the authenticated user's assigned tasks.
func (c *TasksController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	rows, err := c.svc.ListByAssignee(r.Context(), userID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, rows)
}

func (c *TasksController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *TasksController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req tasks.UpdateTaskRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Update(r.Context(), id, userID, req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *TasksController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	if err := c.svc.Delete(r.Context(), id, userID); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteNoContent(w)
}
