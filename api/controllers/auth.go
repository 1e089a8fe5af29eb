package controllers

import (
	"net/http"

	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/api/validators"
	authsvc "github.com/craftloop/craftloop-backend/internal/auth"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type AuthController struct {
	svc  *authsvc.Service
	logg *logger.Logger
}

func NewAuthController(svc *authsvc.Service, logg *logger.Logger) *AuthController {
	return &AuthController{svc: svc, logg: logg}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req authsvc.RegisterRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Register(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req authsvc.LoginRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	resp, err := c.svc.Login(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req authsvc.RefreshRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	pair, err := c.svc.Refresh(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteData(w, http.StatusOK, pair)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	var req authsvc.LogoutRequest
	if err := validators.DecodeAndValidate(r, &req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}

	if err := c.svc.Logout(r.Context(), req); err != nil {
		responses.WriteError(r.Context(), w, c.logg, err)
		return
	}
	responses.WriteNoContent(w)
}
