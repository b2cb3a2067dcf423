// Package request parses and validates inbound relay requests.
//
// Parse never stops at the first problem: every field is decoded on its own
// and the remaining rules run afterwards, so a single ValidationError lists
// all violations.
package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Mode selects the kind of assistance a caller asks for.
type Mode string

const (
	ModeChat         Mode = "chat"
	ModeRefactor     Mode = "refactor"
	ModeAutocomplete Mode = "autocomplete"
)

// Modes lists the accepted modes in display order.
var Modes = []Mode{ModeChat, ModeRefactor, ModeAutocomplete}

// Context carries optional editor state folded into the prompt.
type Context struct {
	CurrentFile string   `json:"currentFile,omitempty"`
	Selection   string   `json:"selection,omitempty"`
	ProjectPath string   `json:"projectPath,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// ChatRequest is a validated POST /run body.
type ChatRequest struct {
	Mode    Mode     `json:"mode" validate:"oneof=chat refactor autocomplete"`
	Message string   `json:"message" validate:"required"`
	Context *Context `json:"context,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes body into a ChatRequest. Mode defaults to chat. On failure
// the returned error is a *ValidationError.
func Parse(body []byte) (*ChatRequest, error) {
	verr := &ValidationError{FormErrors: []string{}, FieldErrors: map[string][]string{}}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		if json.Valid(body) {
			verr.addForm(fmt.Sprintf("expected object, received %s", kindOf(bytes.TrimSpace(body))))
		} else {
			verr.addForm("malformed JSON body")
		}
		return nil, verr
	}
	if raw == nil {
		verr.addForm("expected object, received null")
		return nil, verr
	}

	req := &ChatRequest{}
	decodeField(verr, raw, "mode", &req.Mode)
	decodeField(verr, raw, "message", &req.Message)
	req.Context = decodeContext(verr, raw["context"])

	if _, ok := raw["mode"]; !ok || isNull(raw["mode"]) {
		req.Mode = ModeChat
	}

	if err := validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validating request: %w", err)
		}
		for _, fe := range verrs {
			path := fieldPath(fe.Namespace())
			if _, seen := verr.FieldErrors[path]; seen {
				continue
			}
			verr.addField(path, describe(fe))
		}
	}

	if !verr.empty() {
		return nil, verr
	}
	return req, nil
}

func decodeContext(verr *ValidationError, raw json.RawMessage) *Context {
	if raw == nil || isNull(raw) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		verr.addField("context", typeMismatch("object", raw))
		return nil
	}

	c := &Context{}
	decodeField(verr, fields, "context.currentFile", &c.CurrentFile)
	decodeField(verr, fields, "context.selection", &c.Selection)
	decodeField(verr, fields, "context.projectPath", &c.ProjectPath)

	rawErrs, ok := fields["errors"]
	if !ok || isNull(rawErrs) {
		return c
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawErrs, &items); err != nil {
		verr.addField("context.errors", typeMismatch("array", rawErrs))
		return c
	}
	c.Errors = make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil || isNull(item) {
			verr.addField(fmt.Sprintf("context.errors[%d]", i), typeMismatch("string", item))
			continue
		}
		c.Errors = append(c.Errors, s)
	}
	return c
}

// decodeField decodes the string value under the last segment of path.
// Absent and null values leave dst untouched.
func decodeField[T ~string](verr *ValidationError, fields map[string]json.RawMessage, path string, dst *T) {
	key := path[strings.LastIndex(path, ".")+1:]
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		verr.addField(path, typeMismatch("string", raw))
		return
	}
	*dst = T(s)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// fieldPath strips the struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func typeMismatch(want string, raw json.RawMessage) string {
	return fmt.Sprintf("expected %s, received %s", want, kindOf(raw))
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func kindOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
