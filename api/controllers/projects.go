package controllers

import (
	"net/http"
	"strconv"

	"github.com/craftloop/craftloop-backend/api/middleware"
	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/api/validators"
	"github.com/craftloop/craftloop-backend/internal/projects"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type ProjectsController struct {
	svc  *projects.Service
	logg *logger.Logger
}

func NewProjectsController(svc *projects.Service, logg *logger.Logger) *ProjectsController {
	return &ProjectsController{svc: svc, logg: logg}
}

func (c *ProjectsController) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req projects.CreateProjectRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Create(r.Context(), userID, req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *ProjectsController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
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

func (c *ProjectsController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := projects.ListProjectsRequest{
		Category:   query.Get("category"),
		Difficulty: query.Get("difficulty"),
		Cursor:     query.Get("cursor"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err == nil {
			req.Limit = limit
		}
	}
	if raw := query.Get("creator_id"); raw != "" {
		creatorID, err := strconv.ParseUint(raw, 10, 64)
		if err == nil {
			req.CreatorID = uint(creatorID)
		}
	}

	resp, err := c.svc.List(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *ProjectsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req projects.UpdateProjectRequest
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

func (c *ProjectsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
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

// GetCompletion reads the stored flag and the live task tally without
// recomputing anything.
func (c *ProjectsController) GetCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.CompletionStatus(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

// RecomputeCompletion re-derives the completion flag on demand.
func (c *ProjectsController) RecomputeCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.RecomputeCompletion(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
