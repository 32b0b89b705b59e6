package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hris-dashboard/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and details", func(t *testing.T) {
		err := apperror.Validation(map[string]string{"date": "date is required"})

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, apperror.CodeInvalidInput, got.Code)
		assert.Equal(t, map[string]string{"date": "date is required"}, got.Details)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("load leave: %w", apperror.ErrNotFound)

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
	})

	t.Run("plain error hides message", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := apperror.ErrInvalidInput.WithDetails(map[string]string{"x": "bad"})

	assert.Nil(t, apperror.ErrInvalidInput.Details)
	assert.ErrorIs(t, withDetails, apperror.ErrInvalidInput)
}

type payload struct {
	EmployeeName string `json:"employee_name" validate:"required"`
	Reason       string `json:"reason" validate:"required,min=3"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(payload{Reason: "ab"})
	assert.Error(t, err)

	mapped := apperror.MapValidationError(err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	details, ok := appErr.Details.(map[string]string)
	assert.True(t, ok)
	assert.Len(t, details, 2)
}

func TestMapValidationError_MalformedBody(t *testing.T) {
	mapped := apperror.MapValidationError(errors.New("unexpected EOF"))

	var appErr *apperror.AppError
	assert.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, map[string]string{"body": "malformed request body"}, appErr.Details)
}
