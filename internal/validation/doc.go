// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package validation wraps go-playground/validator v10 for Forkfeed request structs.
//
// Request types declare their rules with struct tags:
//
//	type CommentRequest struct {
//	    ActorID string `json:"actor_id" validate:"required"`
//	    PostID  string `json:"post_id" validate:"required"`
//	    Text    string `json:"text" validate:"notblank,max=2000"`
//	}
//
// ValidateStruct returns a *models.ValidationError whose Fields use the json
// names, so the API layer can report them without translation. Besides the
// built-in tags, category, placekind and notblank are available.
package validation
