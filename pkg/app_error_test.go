package pkg

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamo timeout")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "dynamo timeout")
	assert.Equal(t, HTTPError{Code: "INTERNAL_ERROR", Message: "An internal error occurred"}, appErr.ToHTTPError())
}

func TestAppError_WithDetailCopies(t *testing.T) {
	base := NewDomainErrorSimple("VALIDATION_FAILED", "Validation failed", http.StatusUnprocessableEntity)
	withField := base.WithDetail("field", "is_end_status")

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"field": "is_end_status"}, withField.ToHTTPError().Details)
	assert.Equal(t, http.StatusUnprocessableEntity, withField.HTTPStatus)
}
