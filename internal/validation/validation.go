package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// Locations used as the first element of FieldError.Loc.
const (
	LocBody = "body"
	LocPath = "path"
)

// FieldError describes one failed constraint.
type FieldError struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

// Error is returned when a payload or path parameter fails validation.
// Handlers render it as 422 with Fields under "detail".
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(f.Loc, "."), f.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator and reports field names by their
// json tag.
type Validator struct {
	validate *v10.Validate
}

// New creates a Validator.
func New() *Validator {
	validate := v10.New(v10.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(sf.Name)
		}
		return name
	})
	return &Validator{validate: validate}
}

// Struct validates v and returns *Error on constraint failures. loc is the
// location reported for every field (LocBody or LocPath).
func (v *Validator) Struct(loc string, s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve v10.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate %s: %w", loc, err)
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fieldError(loc, fe))
	}
	return &Error{Fields: out}
}

func fieldError(loc string, fe v10.FieldError) FieldError {
	fieldErr := FieldError{Loc: []string{loc, fe.Field()}}
	switch fe.Tag() {
	case "required":
		fieldErr.Type = "missing"
		fieldErr.Msg = "Field required"
	case "min":
		fieldErr.Type = "string_too_short"
		fieldErr.Msg = fmt.Sprintf("String should have at least %s %s", fe.Param(), plural("character", fe.Param()))
	case "max":
		fieldErr.Type = "string_too_long"
		fieldErr.Msg = fmt.Sprintf("String should have at most %s %s", fe.Param(), plural("character", fe.Param()))
	case "gte":
		fieldErr.Type = "greater_than_equal"
		fieldErr.Msg = "Input should be greater than or equal to " + fe.Param()
	case "lt":
		fieldErr.Type = "less_than"
		fieldErr.Msg = "Input should be less than " + fe.Param()
	default:
		fieldErr.Type = fe.Tag()
		fieldErr.Msg = fe.Error()
	}
	return fieldErr
}

func plural(word, n string) string {
	if n == "1" {
		return word
	}
	return word + "s"
}

// DecodeError converts a body decoding failure into *Error.
func DecodeError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{LocBody}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return &Error{Fields: []FieldError{{
			Type: typeName(typeErr.Type),
			Loc:  loc,
			Msg:  "Input should be a valid " + kindName(typeErr.Type),
		}}}
	}
	return &Error{Fields: []FieldError{{
		Type: "json_invalid",
		Loc:  []string{LocBody},
		Msg:  "JSON decode error",
	}}}
}

// ParamError reports a path parameter that is not an integer.
func ParamError(name string) *Error {
	return &Error{Fields: []FieldError{{
		Type: "int_parsing",
		Loc:  []string{LocPath, name},
		Msg:  "Input should be a valid integer, unable to parse string as an integer",
	}}}
}

func typeName(t reflect.Type) string {
	return kindName(t) + "_type"
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	default:
		return "object"
	}
}
