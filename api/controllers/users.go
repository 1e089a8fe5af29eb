package controllers

import (
	"net/http"

	"github.com/craftloop/craftloop-backend/api/middleware"
	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/api/validators"
	"github.com/craftloop/craftloop-backend/internal/users"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type UsersController struct {
	svc  *users.Service
	logg *logger.Logger
}

func NewUsersController(svc *users.Service, logg *logger.Logger) *UsersController {
	return &UsersController{svc: svc, logg: logg}
}

func (c *UsersController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Get(r.Context(), userID)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *UsersController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
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

func (c *UsersController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	var req users.UpdateUserRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.UpdateProfile(r.Context(), userID, userID, req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
