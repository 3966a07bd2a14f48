// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/forkfeed/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the process-wide validator.
// Field names in errors come from json tags, and the custom tags
// category, placekind and notblank are registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister(v, "category", func(fl validator.FieldLevel) bool {
			_, err := models.ParseCategory(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "placekind", func(fl validator.FieldLevel) bool {
			_, err := models.ParsePlaceKind(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// ValidateStruct validates s and returns nil or a *models.ValidationError
// listing every failing field.
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    return nil, err
//	}
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &models.ValidationError{Fields: []models.FieldError{{Field: "request", Message: err.Error()}}}
	}

	out := &models.ValidationError{Fields: make([]models.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, models.FieldError{
			Field:   fieldPath(fe),
			Message: translateError(fe),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace,
// so CreatePostRequest.tags[2] becomes tags[2].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var simpleMessages = map[string]string{
	"required":  "is required",
	"notblank":  "must not be blank",
	"uuid":      "must be a valid UUID",
	"category":  "must be one of breakfast, lunch, dinner, dessert, snack, other",
	"placekind": "must be one of restaurant, recipe, grocery_store",
	"nefield":   "must differ from the other party",
}

var paramMessages = map[string]string{
	"oneof":            "must be one of: %s",
	"gte":              "must be greater than or equal to %s",
	"lte":              "must be less than or equal to %s",
	"required_without": "is required when %s is empty",
}

func translateError(fe validator.FieldError) string {
	tag := fe.Tag()
	if msg, ok := simpleMessages[tag]; ok {
		return msg
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, fe.Param())
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", tag)
	}
}
