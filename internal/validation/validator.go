// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

// Package validation provides struct validation using go-playground/validator
// v10. It exposes a thread-safe singleton validator instance so struct
// metadata is parsed and cached once.
//
// Example usage:
//
//	if verr := validation.ValidateStruct(&event); verr != nil {
//	    return fmt.Errorf("event rejected: %w", verr)
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents a single field validation failure.
type FieldError struct {
	field string
	tag   string
	param string
	value interface{}
}

// Field returns the struct field name that failed validation.
func (e *FieldError) Field() string { return e.field }

// Tag returns the validation tag that failed (e.g., "required", "min").
func (e *FieldError) Tag() string { return e.tag }

// Param returns the tag parameter (e.g., "0" for "min=0").
func (e *FieldError) Param() string { return e.param }

// Value returns the value that failed validation.
func (e *FieldError) Value() interface{} { return e.value }

// Error returns a human-readable message for the failure.
func (e *FieldError) Error() string {
	switch e.tag {
	case "required":
		return fmt.Sprintf("%s is required", e.field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.field, e.param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.field, e.param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.field, e.param)
	default:
		return fmt.Sprintf("%s failed %s validation", e.field, e.tag)
	}
}

// StructValidationError is a collection of field validation failures for
// one struct.
type StructValidationError struct {
	fieldErrors []FieldError
}

// Errors returns the individual field failures.
func (ve *StructValidationError) Errors() []FieldError {
	return ve.fieldErrors
}

// Error implements the error interface with a combined message.
func (ve *StructValidationError) Error() string {
	if len(ve.fieldErrors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.fieldErrors))
	for i := range ve.fieldErrors {
		messages[i] = ve.fieldErrors[i].Error()
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance. Thread-safe; the
// instance caches struct metadata across calls.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *StructValidationError listing every
// failing field.
func ValidateStruct(s interface{}) *StructValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &StructValidationError{
			fieldErrors: []FieldError{{field: "unknown", tag: "unknown"}},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = FieldError{
			field: fieldErr.Field(),
			tag:   fieldErr.Tag(),
			param: fieldErr.Param(),
			value: fieldErr.Value(),
		}
	}
	return &StructValidationError{fieldErrors: fieldErrors}
}
