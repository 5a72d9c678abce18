package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// FieldError names one rejected field and the rule it broke.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so clients can map errors to their payload
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "document", isDocument)
	mustRegister(v, "nomarkup", isPlainText)
	mustRegister(v, "uuid", isUUID)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// isDocument accepts any well-formed JSON value except null.
func isDocument(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	raw := bytes.TrimSpace(field.Bytes())
	return len(raw) > 0 && json.Valid(raw) && !bytes.Equal(raw, []byte("null"))
}

// isPlainText rejects text that carries HTML markup. The value itself is stored as sent.
func isPlainText(fl validator.FieldLevel) bool {
	return !HasMarkup(fl.Field().String())
}

// isUUID accepts only the canonical 36 character form.
func isUUID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidateStruct checks s against its `validate` tags and lists every failing field.
// A nil slice means s is valid; the error is reserved for misuse such as a nil pointer.
func ValidateStruct(s interface{}) ([]FieldError, error) {
	return collect(validate.Struct(s), "")
}

// ValidateID checks a path identifier.
func ValidateID(field, id string) []FieldError {
	fields, _ := collect(validate.Var(id, "required,uuid"), field)
	return fields
}

func collect(err error, fallbackField string) ([]FieldError, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = fallbackField
		}
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		out = append(out, FieldError{Field: name, Reason: reason})
	}
	return out, nil
}
