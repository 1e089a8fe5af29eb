package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/craftloop/craftloop-backend/pkg/enums"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
)

func pathID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name).
			WithDetails(map[string]any{name: raw})
	}
	return uint(id), nil
}

func pathKind(r *http.Request) (enums.ResourceKind, error) {
	raw := chi.URLParam(r, "kind")
	kind, err := enums.ParseResourceKind(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown resource kind").
			WithDetails(map[string]any{"kind": raw})
	}
	return kind, nil
}

func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
