package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"intervyo-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryHTTPCodes(t *testing.T) {
	cases := []struct {
		name string
		err  *apperror.AppError
		code int
	}{
		{"bad request", apperror.BadRequest("x"), http.StatusBadRequest},
		{"unauthorized", apperror.Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", apperror.Forbidden("x"), http.StatusForbidden},
		{"not found", apperror.NotFound("x"), http.StatusNotFound},
		{"conflict", apperror.Conflict("x"), http.StatusConflict},
		{"invalid state", apperror.InvalidState("x"), http.StatusUnprocessableEntity},
		{"internal", apperror.Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("connect: %w", apperror.Conflict("Already connected with this user"))

	assert.True(t, apperror.Is(err, http.StatusConflict))
	assert.False(t, apperror.Is(err, http.StatusNotFound))
	assert.False(t, apperror.Is(errors.New("plain"), http.StatusConflict))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := apperror.Internal(cause)

	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}
