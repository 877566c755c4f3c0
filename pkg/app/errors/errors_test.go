package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError_StatusCode(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", BadRequestError(cause, "bad"), http.StatusBadRequest},
		{"unauthorized", UnAuthorizedError(nil, "who"), http.StatusUnauthorized},
		{"forbidden", ForbiddenError(nil, "no"), http.StatusForbidden},
		{"not found", ResourceNotFoundError(nil, "missing"), http.StatusNotFound},
		{"conflict", ConflictError(cause, "dup"), http.StatusConflict},
		{"locked", LockedError(cause, "halted"), http.StatusLocked},
		{"dependency", DependencyError(cause, "oracle"), http.StatusBadGateway},
		{"recovering", RecoveringError(cause, "reorg"), http.StatusServiceUnavailable},
		{"general", GeneralError(nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svcErr *ServiceError
			if !errors.As(tt.err, &svcErr) {
				t.Fatalf("expected ServiceError, got %T", tt.err)
			}
			assert.Equal(t, tt.want, svcErr.StatusCode())
		})
	}
}

func TestServiceError_UnwrapAndCategory(t *testing.T) {
	cause := errors.New("price is stale")
	err := DependencyError(cause, "price oracle unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "price is stale", err.Error())
	assert.True(t, Is(err, CategoryDependencyFailure))
	assert.False(t, Is(err, CategoryLocked))
	assert.True(t, IsInternalError(err))
	assert.False(t, IsInternalError(BadRequestError(nil, "bad")))
}

func TestGeneralError_HidesCause(t *testing.T) {
	err := GeneralError(errors.New("pool invariant violated"))

	var svcErr *ServiceError
	assert.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Internal Server Error", svcErr.Message)
	assert.Equal(t, "CategoryGeneralError", svcErr.Category.String())
}
