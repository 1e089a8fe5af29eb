package controllers

import (
	"net/http"

	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/api/validators"
	"github.com/craftloop/craftloop-backend/internal/inventory"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type commitRequest struct {
	ResourceID uint `json:"resource_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required"`
}

type adjustRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// ProjectResourcesController exposes the inventory ledger: committing,
// adjusting and releasing materials and tools on a project.
type ProjectResourcesController struct {
	svc  *inventory.Service
	logg *logger.Logger
}

func NewProjectResourcesController(svc *inventory.Service, logg *logger.Logger) *ProjectResourcesController {
	return &ProjectResourcesController{svc: svc, logg: logg}
}

func (c *ProjectResourcesController) Commit(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req commitRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	binding, err := c.svc.Commit(r.Context(), kind, projectID, req.ResourceID, req.Quantity)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, binding)
}

func (c *ProjectResourcesController) Adjust(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req adjustRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	binding, err := c.svc.Adjust(r.Context(), kind, projectID, resourceID, req.Quantity)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, binding)
}

func (c *ProjectResourcesController) Release(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	resourceID, err := pathID(r, "resourceID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	if err := c.svc.Release(r.Context(), kind, projectID, resourceID); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteNoContent(w)
}

func (c *ProjectResourcesController) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	rows, err := c.svc.ListForProject(r.Context(), kind, projectID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, rows)
}
