package middleware

import (
	"context"

	"github.com/craftloop/craftloop-backend/pkg/auth"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
)

type ctxKey string

const (
	ctxKeyClaims    ctxKey = "auth_claims"
	ctxKeyRequestID ctxKey = "request_id"
)

// ClaimsFromContext returns the authenticated claims set by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.AccessTokenClaims, error) {
	claims, ok := ctx.Value(ctxKeyClaims).(*auth.AccessTokenClaims)
	if !ok || claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authentication")
	}
	return claims, nil
}

// UserIDFromContext is a shortcut for the authenticated user's ID.
func UserIDFromContext(ctx context.Context) (uint, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// RequestIDFromContext returns the request ID assigned by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
