package request

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports every problem found in a request body.
// FormErrors hold body-level problems; FieldErrors are keyed by field path
// (e.g. "message", "context.errors[1]").
type ValidationError struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func (e *ValidationError) Error() string {
	parts := append([]string(nil), e.FormErrors...)
	for _, field := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.FieldErrors[field], "; ")))
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

// Fields returns the names of the fields with violations, sorted.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e *ValidationError) addForm(msg string) {
	e.FormErrors = append(e.FormErrors, msg)
}

func (e *ValidationError) addField(field, msg string) {
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.FormErrors) == 0 && len(e.FieldErrors) == 0
}
