// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/models"
)

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", models.NewNotFoundError("post", "p1"), http.StatusNotFound, ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", models.NewNotFoundError("user", "u1")), http.StatusNotFound, ErrCodeNotFound},
		{"permission", models.NewPermissionError("delete this post", "bob"), http.StatusForbidden, ErrCodeForbidden},
		{"validation", models.NewValidationError("text", "must not be blank"), http.StatusBadRequest, ErrCodeValidationFailed},
		{"self reference", models.NewSelfReferenceError("alice"), http.StatusBadRequest, ErrCodeSelfReference},
		{"missing viewer", ErrMissingViewer, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"malformed body", fmt.Errorf("%w: eof", ErrMalformedBody), http.StatusBadRequest, ErrCodeBadRequest},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, code := ErrorStatus(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("ErrorStatus = %d %s, want %d %s", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	WriteError(rec, req, errors.New("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("internal error leaked: %s", rec.Body.String())
	}
}

func TestWriteError_ValidationDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	rec := httptest.NewRecorder()
	WriteError(rec, req, &models.ValidationError{Fields: []models.FieldError{
		{Field: "text", Message: "must not be blank"},
		{Field: "post_id", Message: "is required"},
	}})

	var resp struct {
		Error struct {
			Code    string              `json:"code"`
			Details []models.FieldError `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != ErrCodeValidationFailed || len(resp.Error.Details) != 2 {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestResponseWriter_Envelope(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-42"))

	tests := []struct {
		name       string
		write      func(*ResponseWriter)
		wantStatus int
		wantOK     bool
	}{
		{"success", func(rw *ResponseWriter) { rw.Success("ok") }, http.StatusOK, true},
		{"created", func(rw *ResponseWriter) { rw.Created("ok") }, http.StatusCreated, true},
		{"list", func(rw *ResponseWriter) { rw.List([]string{"a"}, 1) }, http.StatusOK, true},
		{"forbidden", func(rw *ResponseWriter) { rw.Error(http.StatusForbidden, ErrCodeForbidden, "no") }, http.StatusForbidden, false},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("no") }, http.StatusNotFound, false},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("no", nil) }, http.StatusBadRequest, false},
		{"rate limited", func(rw *ResponseWriter) { rw.TooManyRequests("no") }, http.StatusTooManyRequests, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			tt.write(NewResponseWriter(rec, req))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q", ct)
			}
			var resp APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Success != tt.wantOK {
				t.Errorf("success = %v", resp.Success)
			}
			if resp.Meta == nil || resp.Meta.RequestID != "req-42" {
				t.Errorf("meta = %+v", resp.Meta)
			}
			if !tt.wantOK && (resp.Error == nil || resp.Error.RequestID != "req-42") {
				t.Errorf("error = %+v", resp.Error)
			}
		})
	}
}

func TestResponseWriter_NoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewResponseWriter(rec, httptest.NewRequest(http.MethodDelete, "/x", nil)).NoContent()
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Errorf("NoContent = %d %q", rec.Code, rec.Body.String())
	}
}
