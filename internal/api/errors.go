// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/models"
)

// Common API errors
var (
	// ErrMissingViewer indicates a request that needs an acting user arrived without X-User-ID
	ErrMissingViewer = errors.New("X-User-ID header is required")

	// ErrMalformedBody indicates the request body is not valid JSON for the endpoint
	ErrMalformedBody = errors.New("malformed request body")
)

// ErrorStatus maps an error to its HTTP status and response code.
//
//	NotFound      -> 404 NOT_FOUND
//	Permission    -> 403 FORBIDDEN
//	Validation    -> 400 VALIDATION_FAILED
//	SelfReference -> 400 SELF_REFERENCE
//	anything else -> 500 INTERNAL_ERROR
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingViewer):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, models.ErrPermission):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, ErrCodeValidationFailed
	case errors.Is(err, models.ErrSelfReference):
		return http.StatusBadRequest, ErrCodeSelfReference
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteError classifies err and writes the matching envelope. Internal
// errors are logged with request context and their message is not exposed.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	status, code := ErrorStatus(err)

	switch code {
	case ErrCodeInternalError:
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		rw.InternalError("An internal error occurred")
	case ErrCodeValidationFailed:
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			rw.ValidationError(ve.Error(), ve.Fields)
			return
		}
		rw.ValidationError(err.Error(), nil)
	default:
		rw.Error(status, code, err.Error())
	}
}
