package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to the validation messages raised for it.
type FieldErrors map[string][]string

// Add records a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, messages := range fe {
		parts = append(parts, field+": "+strings.Join(messages, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// messages holds the client-facing text per struct field and validation tag.
var messages = map[string]string{
	"Title.required":       "You should fill out a title.",
	"Title.max":            "The title shouldn't have more than 100 characters",
	"Description.required": "You should fill out a description",
	"Description.max":      "The description shouldn't have more than 500 characters.",
	"Description.nefield":  "The provided description should be different from the title.",
	"FirstName.required":   "You should fill out a first name.",
	"LastName.required":    "You should fill out a last name.",
	"DateOfBirth.required": "You should fill out a date of birth.",
	"Genre.required":       "You should fill out a genre.",
}

// Validator checks request bodies and reports failures keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator reading the `validate` struct tags.
func NewValidator() *Validator {
	v := validator.New()
	v.SetTagName("validate")
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s. It returns nil, or FieldErrors for invalid input.
// Any other error means s could not be validated at all.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fe := FieldErrors{}
	for _, e := range validationErrors {
		fe.Add(fieldPath(e), message(e))
	}
	return fe
}

// Slice validates every element of items, prefixing field names with the
// element index.
func (v *Validator) Slice(items []AuthorForCreation) error {
	all := FieldErrors{}
	for i, item := range items {
		err := v.Struct(item)
		if err == nil {
			continue
		}
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		for field, msgs := range fe {
			for _, m := range msgs {
				all.Add(fmt.Sprintf("[%d].%s", i, field), m)
			}
		}
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

// fieldPath drops the top-level struct name from the namespace, so nested
// fields read "books[0].title".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func message(e validator.FieldError) string {
	if m, ok := messages[e.StructField()+"."+e.Tag()]; ok {
		return m
	}
	if e.Param() != "" {
		return fmt.Sprintf("%s failed on %s=%s", e.Field(), e.Tag(), e.Param())
	}
	return fmt.Sprintf("%s failed on %s", e.Field(), e.Tag())
}
