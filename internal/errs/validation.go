package errs

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field messages so callers can render
// feedback next to the offending filter or form field.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (ve *ValidationError) Add(field, message string) {
	ve.Fields[field] = append(ve.Fields[field], message)
}

func (ve *ValidationError) HasErrors() bool {
	return len(ve.Fields) > 0
}

// ErrOrNil lets validators build unconditionally and return a plain
// error only when something was actually recorded.
func (ve *ValidationError) ErrOrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (ve *ValidationError) Error() string {
	fields := make([]string, 0, len(ve.Fields))
	for field := range ve.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(ve.Fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
