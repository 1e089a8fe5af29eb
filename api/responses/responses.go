package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type envelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteData writes a success envelope with the provided status.
func WriteData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, envelope{Data: payload})
}

// WriteNoContent writes an empty 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps a service error onto the HTTP surface. Internal failures
// are logged with their cause and masked with a generic message.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	message := typed.Message()
	if typed.Code() == pkgerrors.CodeInternal || typed.Code() == pkgerrors.CodeDependency {
		message = meta.PublicMessage
		if logg != nil {
			logg.Error(ctx, "request failed", err)
		}
	}

	detail := errorDetail{
		Code:    string(typed.Code()),
		Message: message,
	}
	if meta.DetailsAllowed {
		detail.Details = typed.Details()
	}

	writeJSON(w, meta.HTTPStatus, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
