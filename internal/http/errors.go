package httpx

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hireloop/hireloop/internal/data"
	"github.com/hireloop/hireloop/internal/domain/model"
	apperrors "github.com/hireloop/hireloop/internal/errors"
	"github.com/hireloop/hireloop/internal/service"
)

// WriteServiceError maps a service-layer error to the right HTTP status and
// writes it. Unrationalized errors come back as a 500 with a generic code so
// internals never leak to the client.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
	case errors.Is(err, service.ErrTokenRejected):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "token_rejected", Err: err})
	case errors.Is(err, service.ErrSetupNotAllowed):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: err})
	case isNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case errors.Is(err, data.ErrAlreadyApplied):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "already_applied", Err: err})
	case errors.Is(err, data.ErrJobClosed):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "job_closed", Err: err})
	case errors.Is(err, model.ErrIllegalTransition):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "illegal_transition", Err: err})
	case isValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	case isConflict(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal_error",
			Err: errors.New("internal error")})
	}
}

func isNotFound(err error) bool {
	if errors.Is(err, data.ErrCandidateNotFound) ||
		errors.Is(err, data.ErrEmployerNotFound) ||
		errors.Is(err, data.ErrJobNotFound) ||
		errors.Is(err, data.ErrApplicationNotFound) ||
		errors.Is(err, data.ErrBenchCandidateNotFound) ||
		errors.Is(err, data.ErrFileNotFound) {
		return true
	}
	return apperrors.IsNotFound(err)
}

func isValidation(err error) bool {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return true
	}
	return apperrors.IsValidation(err) || apperrors.IsForeignKey(err)
}

func isConflict(err error) bool {
	return apperrors.IsConflict(err)
}
