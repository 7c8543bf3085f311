package validation

import (
	"sort"
	"strings"
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string

	order []string
}

// Error implements the error interface. Field messages are joined in the order
// they were recorded.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if len(v.FieldErrors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(v.FieldErrors))
	for _, field := range v.Fields() {
		messages = append(messages, v.FieldErrors[field])
	}
	return strings.Join(messages, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Fields returns the failing field names, in recording order when known and
// alphabetically otherwise.
func (v *ValidationError) Fields() []string {
	if v == nil || len(v.FieldErrors) == 0 {
		return nil
	}
	if len(v.order) == len(v.FieldErrors) {
		return append([]string(nil), v.order...)
	}

	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// add records a field level validation error. The first message for a field wins.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[field]; exists {
		return
	}
	v.FieldErrors[field] = message
	v.order = append(v.order, field)
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for _, field := range other.Fields() {
		v.add(field, other.FieldErrors[field])
	}
}

// orNil converts an empty validation error into a nil error so callers can use
// the usual err != nil check.
func (v *ValidationError) orNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}
