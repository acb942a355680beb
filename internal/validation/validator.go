// Reelgraph - Social Film Rating and Recommendation Service
// Copyright 2026 Reelgraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package validation provides struct validation using
// go-playground/validator v10 behind a thread-safe singleton.
//
// Custom validators registered here:
//   - notblank: string contains at least one non-whitespace rune
//   - nowhitespace: string contains no whitespace at all (logins)
//   - cinemadate: date is strictly after 1895-12-28, the first public
//     film screening
//   - pastdate: date is not in the future (birthdays)
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/reelgraph/reelgraph/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the singleton validator, registering custom
// validators on first use.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Registration only fails for empty tags or nil funcs, which
		// would be a programming error caught by any test run.
		_ = validate.RegisterValidation("notblank", validateNotBlank)
		_ = validate.RegisterValidation("nowhitespace", validateNoWhitespace)
		validate.RegisterCustomTypeFunc(dateValueFunc, models.Date{})
		_ = validate.RegisterValidation("cinemadate", validateCinemaDate)
		_ = validate.RegisterValidation("pastdate", validatePastDate)
	})
	return validate
}

// dateValueFunc extracts the underlying time.Time from models.Date so
// the date validators receive a comparable value.
func dateValueFunc(field reflect.Value) interface{} {
	if d, ok := field.Interface().(models.Date); ok {
		return d.Time
	}
	return nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateNoWhitespace(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && !strings.ContainsAny(s, " \t\n\r")
}

func validateCinemaDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(models.CinemaEpoch)
}

func validatePastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(time.Now())
}

// ValidateStruct validates s against its validate tags. On failure it
// returns an error wrapping models.ErrInvalidArgument with per-field
// messages, so callers can map it to a 400 with errors.Is.
func ValidateStruct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidArgument, strings.Join(messages, "; "))
}

// fieldMessage renders one validation failure as a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "nowhitespace":
		return fmt.Sprintf("%s must not contain whitespace", field)
	case "cinemadate":
		return fmt.Sprintf("%s must be after 1895-12-28", field)
	case "pastdate":
		return fmt.Sprintf("%s must not be in the future", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
