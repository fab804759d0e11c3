package http

import (
	"errors"
	"net/http"

	apierrors "github.com/Divis007/data-mapping/internal/errors"
	"github.com/Divis007/data-mapping/internal/services"
)

// serviceError translates service sentinel errors into API errors so the
// error handler renders them with the right status. Errors without a
// sentinel pass through and render as internal.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidFileType):
		return apierrors.New(http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrNoFilesFound):
		return apierrors.New(http.StatusNotFound, "FILE_NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrOperationNotFound):
		return apierrors.New(http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrInvalidStep):
		return apierrors.New(http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, services.ErrOperationTimeout):
		return apierrors.New(http.StatusGatewayTimeout, "TIMEOUT", err.Error())
	}
	return err
}
