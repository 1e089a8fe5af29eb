package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/craftloop/craftloop-backend/api/responses"
	"github.com/craftloop/craftloop-backend/pkg/auth"
	"github.com/craftloop/craftloop-backend/pkg/auth/session"
	"github.com/craftloop/craftloop-backend/pkg/config"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

// Authenticator guards routes behind a bearer token. A token is only good
// while its refresh session is still alive, so logout takes effect
// immediately.
type Authenticator struct {
	jwtCfg   config.JWTConfig
	sessions session.AccessSessionChecker
	logg     *logger.Logger
}

func NewAuthenticator(jwtCfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) *Authenticator {
	return &Authenticator{jwtCfg: jwtCfg, sessions: sessions, logg: logg}
}

func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			responses.WriteError(r.Context(), w, a.logg,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
			return
		}

		claims, err := auth.ParseAccessToken(a.jwtCfg, token)
		if err != nil {
			responses.WriteError(r.Context(), w, a.logg,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token"))
			return
		}

		if a.sessions != nil {
			alive, err := a.sessions.HasSession(r.Context(), claims.ID)
			if err != nil {
				responses.WriteError(r.Context(), w, a.logg,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session check failed"))
				return
			}
			if !alive {
				responses.WriteError(r.Context(), w, a.logg,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "session revoked"))
				return
			}
		}

		ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
		if a.logg != nil {
			ctx = a.logg.WithField(ctx, "user_id", claims.UserID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
