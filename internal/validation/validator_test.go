// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

func validFilm() models.Film {
	return models.Film{
		Name:        "Valid Film",
		Description: "A film",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    120,
	}
}

func TestValidateFilm(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.Film)
		wantField string
		wantTag   string
	}{
		{"valid", func(*models.Film) {}, "", ""},
		{"blank name", func(f *models.Film) { f.Name = "   " }, "name", "notblank"},
		{"description 200 runes ok", func(f *models.Film) { f.Description = strings.Repeat("ж", 200) }, "", ""},
		{"description too long", func(f *models.Film) { f.Description = strings.Repeat("a", 201) }, "description", "max"},
		{"epoch day ok", func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, time.December, 28) }, "", ""},
		{"before epoch", func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, time.December, 27) }, "releaseDate", "cinema_epoch"},
		{"missing release date", func(f *models.Film) { f.ReleaseDate = models.Date{} }, "releaseDate", "required"},
		{"zero duration", func(f *models.Film) { f.Duration = 0 }, "duration", "gt"},
		{"negative duration", func(f *models.Film) { f.Duration = -5 }, "duration", "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFilm()
			tt.mutate(&f)
			err := ValidateStruct(&f)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			got := err.Errors()[0]
			if got.Field() != tt.wantField || got.Tag() != tt.wantTag {
				t.Errorf("got field=%s tag=%s, want field=%s tag=%s", got.Field(), got.Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	prevNow := now
	now = func() time.Time { return time.Date(2026, time.June, 1, 15, 0, 0, 0, time.UTC) }
	defer func() { now = prevNow }()

	today := models.NewDate(2026, time.June, 1)
	tomorrow := models.NewDate(2026, time.June, 2)

	tests := []struct {
		name    string
		user    models.User
		wantTag string
	}{
		{"valid", models.User{Email: "a@b.com", Login: "neo"}, ""},
		{"birthday today", models.User{Email: "a@b.com", Login: "neo", Birthday: &today}, ""},
		{"birthday tomorrow", models.User{Email: "a@b.com", Login: "neo", Birthday: &tomorrow}, "notfuture"},
		{"bad email", models.User{Email: "not-an-email", Login: "neo"}, "email"},
		{"missing email", models.User{Login: "neo"}, "required"},
		{"login with space", models.User{Email: "a@b.com", Login: "the one"}, "nowhitespace"},
		{"blank login", models.User{Email: "a@b.com", Login: " "}, "notblank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.user)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tag := err.Errors()[0].Tag(); tag != tt.wantTag {
				t.Errorf("tag = %s, want %s", tag, tt.wantTag)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	positive := true
	ok := models.Review{Content: "Great", IsPositive: &positive, UserID: 1, FilmID: 1}
	if err := ValidateStruct(&ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := models.Review{Content: strings.Repeat("x", 5001), UserID: 1}
	err := ValidateStruct(&missing)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fields := map[string]string{}
	for _, e := range err.Errors() {
		fields[e.Field()] = e.Tag()
	}
	want := map[string]string{"content": "max", "isPositive": "required", "filmId": "required"}
	for f, tag := range want {
		if fields[f] != tag {
			t.Errorf("field %s: tag = %q, want %q (all: %v)", f, fields[f], tag, fields)
		}
	}
}

func TestRequestValidationErrorMessages(t *testing.T) {
	f := validFilm()
	f.Name = ""
	f.Duration = 0

	err := ValidateStruct(&f)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "name must not be blank") || !strings.Contains(msg, "duration must be greater than 0") {
		t.Errorf("unexpected message: %s", msg)
	}
	details := err.Details()
	fields, ok := details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("details = %v", details)
	}
}

func TestNewRequestValidationError(t *testing.T) {
	err := NewRequestValidationError("by", "oneof", "by must be one of: title director", "genre")
	if err.Error() != "by must be one of: title director" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Errors()[0].Value() != "genre" {
		t.Errorf("Value() = %v", err.Errors()[0].Value())
	}
}
