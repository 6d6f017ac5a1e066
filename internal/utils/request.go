package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	appErrors "storefront/internal/errors"
	"storefront/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody decodes the request body into dest and writes the error
// response itself when the body is empty or malformed. Callers just return
// on a non-nil error.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dest)

	if errors.Is(err, io.EOF) {
		response.Error(w, appErrors.BadRequestError("Request body cannot be empty"))

		return err
	}

	if err != nil {
		response.Error(w, appErrors.BadRequestError("Request body is not valid JSON").WithError(err))

		return err
	}

	return nil
}

// ValidateStruct runs validator tags over data and writes the per-field
// validation response on failure.
func ValidateStruct(w http.ResponseWriter, validate *validator.Validate, data any) bool {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.InternalError("Unexpected validation error").WithError(err))
		}

		return false
	}

	return true
}
