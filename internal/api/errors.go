package api

import (
	stdErrors "errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/errors"
)

// mapError maps application domain errors to appropriate HTTP status codes.
//
// This is the only place where errors from internal/errors are converted to HTTP responses.
// Every error defined there should have an explicit case here, otherwise it falls through to 500.
//
// Mapping guidelines:
//   - 400: Client errors (bad input, invalid requests)
//   - 404: Unknown server identifiers
//   - 422: Stored data that exists but cannot be decoded
//   - 500: IO failures, unprovisioned store keys and anything unexpected (default case)
//
// Add test cases to TestMapError when adding a case.
func mapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrServerNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrMalformed):
		logger.Warn("Stored data is malformed", "error", err)
		return huma.Error422UnprocessableEntity(err.Error())
	case stdErrors.Is(err, errors.ErrStoreKeyMissing):
		logger.Error("Catalog store is not provisioned", "error", err)
		return huma.Error500InternalServerError("Catalog is not available", err)
	case stdErrors.Is(err, errors.ErrIOFailure):
		logger.Error("File access failed", "error", err)
		return huma.Error500InternalServerError("File access failed", err)
	default:
		logger.Error("Unexpected error", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// ErrorHandler returns a function suitable for huma.NewErrorWithContext.
// Errors returned by handlers reach it with a 500 status and are mapped through mapError,
// errors raised by huma itself (request validation) keep the status huma chose.
func ErrorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		switch {
		case len(errs) == 0:
			return huma.NewError(status, msg)
		case status > 0 && status < 500:
			return huma.NewError(status, msg, errs...)
		case len(errs) == 1:
			return mapError(logger, errs[0])
		default:
			return mapError(logger, stdErrors.Join(errs...))
		}
	}
}
