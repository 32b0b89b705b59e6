package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// employee_name -> Employee Name
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts a binding error into an INVALID_INPUT AppError
// whose details hold one message per failing field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return ErrInvalidInput.WithDetails(map[string]string{"body": "malformed request body"})
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = fieldMessage(e)
	}

	first := errs[0]
	var head *AppError
	switch first.Tag() {
	case "required":
		head = RequiredField(formatFieldName(first.Field()))
	default:
		head = InvalidField(formatFieldName(first.Field()))
	}
	return head.WithDetails(fields)
}

func fieldMessage(e validator.FieldError) string {
	if translator != nil {
		return e.Translate(translator)
	}
	switch e.Tag() {
	case "required":
		return formatFieldName(e.Field()) + " is required"
	default:
		return formatFieldName(e.Field()) + " is invalid"
	}
}
