// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. The typed errors below match these through errors.Is.
var (
	// ErrNotFound indicates a referenced user, post, comment or notification does not exist
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates the actor may not perform a mutating operation
	ErrPermission = errors.New("permission denied")

	// ErrValidation indicates a missing or malformed input field
	ErrValidation = errors.New("validation failed")

	// ErrSelfReference indicates a user tried to follow themselves
	ErrSelfReference = errors.New("self reference")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Kind string // "user", "post", "comment", "notification"
	ID   string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PermissionError describes a rejected action.
type PermissionError struct {
	Action  string
	ActorID string
}

// NewPermissionError creates a PermissionError.
func NewPermissionError(action, actorID string) *PermissionError {
	return &PermissionError{Action: action, ActorID: actorID}
}

func (e *PermissionError) Error() string {
	if e.ActorID == "" {
		return fmt.Sprintf("%s requires a viewer", e.Action)
	}
	return fmt.Sprintf("user %q may not %s", e.ActorID, e.Action)
}

// Is matches ErrPermission.
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}

// FieldError is a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more invalid fields.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SelfReferenceError is returned when a user attempts to follow themselves.
type SelfReferenceError struct {
	UserID string
}

// NewSelfReferenceError creates a SelfReferenceError.
func NewSelfReferenceError(userID string) *SelfReferenceError {
	return &SelfReferenceError{UserID: userID}
}

func (e *SelfReferenceError) Error() string {
	return fmt.Sprintf("user %q cannot follow themselves", e.UserID)
}

// Is matches ErrSelfReference.
func (e *SelfReferenceError) Is(target error) bool {
	return target == ErrSelfReference
}
