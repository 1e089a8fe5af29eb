package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20

// DecodeAndValidate reads a JSON body into dst and runs struct validation.
// Failures come back as a validation error with per-field details.
func DecodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"body": decodeMessage(err)})
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			details := make(map[string]any, len(fieldErrors))
			for _, fe := range fieldErrors {
				details[strings.ToLower(fe.Field())] = fmt.Sprintf("failed %q validation", fe.Tag())
			}
			return pkgerrors.New(pkgerrors.CodeValidation, "request validation failed").
				WithDetails(details)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request validation failed")
	}
	return nil
}

func decodeMessage(err error) string {
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntax):
		return fmt.Sprintf("malformed JSON at offset %d", syntax.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("invalid type for field %q", typeErr.Field)
	default:
		return "could not parse body"
	}
}
