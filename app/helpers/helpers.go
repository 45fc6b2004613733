package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/go-playground/validator/v10"
)

// ValidationError carries one message per offending field, keyed by the
// field's path in the CMS document (e.g. "dimensions.length").
type ValidationError struct {
	DocumentType string
	Fields       map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return fmt.Sprintf("invalid %s: %s", e.DocumentType, strings.Join(msgs, "; "))
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateDocument checks a document against its field rules.
func ValidateDocument(v *validator.Validate, doc models.Document) error {
	err := v.Struct(doc)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return &ValidationError{
		DocumentType: doc.DocumentType(),
		Fields:       FormatValidationErrors(validationErrors),
	}
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := fieldPath(err.Namespace())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "gte", "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "lte", "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of [%s]", field, err.Param())
		case "gtefield":
			errorMessages[field] = fmt.Sprintf("%s must not be less than %s", field, lowerFirst(err.Param()))
		case "ltefield":
			errorMessages[field] = fmt.Sprintf("%s must not be greater than %s", field, lowerFirst(err.Param()))
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation", field, err.Tag())
		}
	}
	return errorMessages
}

// fieldPath drops the root struct name: "TableShape.slug.current" -> "slug.current".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
