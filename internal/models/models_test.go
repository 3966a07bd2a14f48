// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "dinner", want: CategoryDinner},
		{input: "DINNER", want: CategoryDinner},
		{input: "  Breakfast ", want: CategoryBreakfast},
		{input: "Snack", want: CategorySnack},
		{input: "other", want: CategoryOther},
		{input: "brunch", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("ParseCategory(%q) error = %v, want ErrValidation", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFilterSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    FilterSpec
		wantErr bool
	}{
		{input: "", want: AllPosts()},
		{input: "all", want: AllPosts()},
		{input: "Following", want: FollowingOnly()},
		{input: "TRENDING", want: Trending()},
		{input: "category=dinner", want: InCategory(CategoryDinner)},
		{input: "category=Dessert", want: InCategory(CategoryDessert)},
		{input: "category=", wantErr: true},
		{input: "category=brunch", wantErr: true},
		{input: "popular", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFilterSpec(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFilterSpec(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilterSpec(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilterSpec(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterSpec_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, spec := range []FilterSpec{AllPosts(), FollowingOnly(), Trending(), InCategory(CategoryLunch)} {
		parsed, err := ParseFilterSpec(spec.String())
		if err != nil {
			t.Fatalf("ParseFilterSpec(%q): %v", spec.String(), err)
		}
		if parsed != spec {
			t.Errorf("round trip of %q = %+v", spec.String(), parsed)
		}
	}
}

func TestFilterSpec_Validate(t *testing.T) {
	t.Parallel()

	if err := (FilterSpec{}).Validate(); err != nil {
		t.Errorf("zero FilterSpec should be valid, got %v", err)
	}
	if err := (FilterSpec{Mode: FilterCategory, Category: "brunch"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("bad category should fail validation, got %v", err)
	}
	if err := (FilterSpec{Mode: "popular"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown mode should fail validation, got %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "not_found", err: NewNotFoundError("post", "p1"), sentinel: ErrNotFound},
		{name: "permission", err: NewPermissionError("delete post", "u1"), sentinel: ErrPermission},
		{name: "validation", err: NewValidationError("text", "required"), sentinel: ErrValidation},
		{name: "self_reference", err: NewSelfReferenceError("u1"), sentinel: ErrSelfReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("operation: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if tt.err.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}

	var verr *ValidationError
	if !errors.As(fmt.Errorf("wrap: %w", NewValidationError("text", "required")), &verr) {
		t.Fatal("errors.As should find *ValidationError")
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "text" {
		t.Errorf("unexpected fields: %+v", verr.Fields)
	}
}

func TestPostClone(t *testing.T) {
	t.Parallel()

	p := Post{ID: "p1", Tags: []string{"spicy"}, Place: &SharedPlace{Kind: PlaceRestaurant, Name: "Noodle Bar"}}
	c := p.Clone()
	c.Tags[0] = "sweet"
	c.Place.Name = "Changed"

	if p.Tags[0] != "spicy" {
		t.Errorf("clone shares tag slice: %v", p.Tags)
	}
	if p.Place.Name != "Noodle Bar" {
		t.Errorf("clone shares place: %v", p.Place.Name)
	}
}

func TestParsePlaceKind(t *testing.T) {
	t.Parallel()

	if k, err := ParsePlaceKind("Restaurant"); err != nil || k != PlaceRestaurant {
		t.Errorf("ParsePlaceKind(Restaurant) = %q, %v", k, err)
	}
	if k, err := ParsePlaceKind("grocery_store"); err != nil || k != PlaceGroceryStore {
		t.Errorf("ParsePlaceKind(grocery_store) = %q, %v", k, err)
	}
	if _, err := ParsePlaceKind("bakery"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParsePlaceKind(bakery) error = %v", err)
	}
}
