// Package validation schema-checks request input and reports failures as an
// ordered list of field errors instead of returning an error value.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed check, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// messages maps validator tags to message templates. Templates take the
// field name and, where they have a second verb, the tag parameter.
var messages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s must contain at least %s character(s)",
	"max":      "%s must contain at most %s character(s)",
	"oneof":    "%s must be one of: %s",
	"maxbytes": "%s must be at most %s bytes long",
}

// maxBytes checks the encoded length of a string, unlike max which counts
// runes. bcrypt rejects passwords longer than 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validator wraps a go-playground validator configured to report JSON field
// names.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Only fails for a duplicate or empty tag name.
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &Validator{v: v}
}

// Struct validates s and returns the failures in struct field order, or nil.
func (v *Validator) Struct(s any) []FieldError {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: e.Field(), Message: message(e)})
	}
	return out
}

func message(e validator.FieldError) string {
	tmpl, ok := messages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", e.Field())
	}
	param := strings.ReplaceAll(e.Param(), " ", ", ")
	if strings.Count(tmpl, "%s") == 2 {
		return fmt.Sprintf(tmpl, e.Field(), param)
	}
	return fmt.Sprintf(tmpl, e.Field())
}

// BodyErrors reports an undecodable request body.
func BodyErrors() []FieldError {
	return []FieldError{{Field: "body", Message: "Invalid JSON body"}}
}
