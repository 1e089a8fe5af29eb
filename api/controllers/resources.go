package controllers

import (
	"net/http"

	"github.com/craftloop/craftloop-backend/api/middleware"
	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/api/validators"
	"github.com/craftloop/craftloop-backend/internal/resources"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

// ResourcesController serves material and tool CRUD through one handler
// set; the {kind} route segment selects the table.
type ResourcesController struct {
	svc  *resources.Service
	logg *logger.Logger
}

func NewResourcesController(svc *resources.Service, logg *logger.Logger) *ResourcesController {
	return &ResourcesController{svc: svc, logg: logg}
}

func (c *ResourcesController) Create(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req resources.CreateResourceRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Create(r.Context(), kind, userID, req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *ResourcesController) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	id, err := pathID(r, "resourceID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Get(r.Context(), kind, id)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

// ListMine returns the caller's own stock of the requested kind.
func (c *ResourcesController) ListMine(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	rows, err := c.svc.ListByOwner(r.Context(), kind, userID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, rows)
}

func (c *ResourcesController) Update(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	id, err := pathID(r, "resourceID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req resources.UpdateResourceRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Update(r.Context(), kind, id, userID, req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *ResourcesController) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	id, err := pathID(r, "resourceID")
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	if err := c.svc.Delete(r.Context(), kind, id, userID); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteNoContent(w)
}
