// Vessel Tracker - AIS Stop Detection and GeoJSON Export
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesseltracker

// Package validation provides struct validation using go-playground/validator v10.
// It provides a thread-safe singleton validator instance whose error messages
// name fields by their configuration key (the `koanf` struct tag).
//
// Features:
//   - Singleton validator instance (thread-safe, caches struct info)
//   - Field names reported as dotted config keys, e.g. "ingest.chunk_size"
//   - Error translation to short human-readable messages
//   - Uses WithRequiredStructEnabled option (v11+ compatibility)
//
// Example usage:
//
//	type IngestConfig struct {
//	    ChunkSize int `koanf:"chunk_size" validate:"min=1"`
//	    Workers   int `koanf:"workers" validate:"min=0"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents a single field validation error with structured information.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the dotted config key of the field that failed validation.
func (e *FieldError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "1" for "min=1").
func (e *FieldError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *FieldError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *FieldError) Error() string {
	return e.message
}

// StructError represents a collection of validation errors.
type StructError struct {
	errors []FieldError
}

// Errors returns the slice of field errors.
func (se *StructError) Errors() []FieldError {
	return se.errors
}

// Fields returns the config keys that failed validation, in order.
func (se *StructError) Fields() []string {
	fields := make([]string, len(se.errors))
	for i, err := range se.errors {
		fields[i] = err.field
	}
	return fields
}

// Error implements the error interface, returning a combined error message.
func (se *StructError) Error() string {
	if len(se.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(se.errors))
	for _, err := range se.errors {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their koanf key so messages match the config file.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *StructError if validation fails.
func ValidateStruct(s interface{}) error {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Unexpected error type (e.g. invalid argument) - wrap it
		return &StructError{
			errors: []FieldError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		field := configKey(fieldErr)
		fieldErrors[i] = FieldError{
			field:   field,
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr, field),
		}
	}

	return &StructError{errors: fieldErrors}
}

// configKey strips the root struct name from the namespace:
// "Config.ingest.chunk_size" -> "ingest.chunk_size".
func configKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"filepath": "%s must be a valid file path",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError, field string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}

	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	if tag == "min" {
		return translateMin(fe, field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}

// translateMin words min violations by kind: length for strings, value otherwise.
func translateMin(fe validator.FieldError, field, param string) string {
	if fe.Kind() == reflect.String {
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	}
	return fmt.Sprintf("%s must be at least %s", field, param)
}
