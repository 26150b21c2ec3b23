// Package errors defines the domain-level errors returned by the reconciliation engine and its collaborators.
// Callers classify failures with errors.Is; only the dispatch boundary (HTTP API and CLI output)
// flattens them into a success flag and a message.
//
// NOTE: When adding a new error here, add a case to mapError (internal/api/errors.go)
// and a test case to TestMapError, otherwise the API will report it as a 500.
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the caller provided invalid input,
	// such as an empty server identifier or too many values for a single-value argument.
	ErrBadRequest = errors.New("bad request")

	// ErrServerNotFound indicates that the requested server identifier is not present in the catalog.
	// This is reachable from user input (a stale or mistyped identifier).
	ErrServerNotFound = errors.New("server not found")

	// ErrMalformed indicates that a catalog payload or client config file exists but cannot be decoded.
	ErrMalformed = errors.New("malformed data")

	// ErrIOFailure indicates that a file could not be read or written for a reason other than absence.
	ErrIOFailure = errors.New("io failure")

	// ErrStoreKeyMissing indicates that a key the engine requires has not been provisioned in the catalog store.
	ErrStoreKeyMissing = errors.New("store key missing")
)
