package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("email", "email already registered"), http.StatusConflict},
		{Dependency("doctor has prescribed appointments"), http.StatusConflict},
		{NotFound("patient"), http.StatusNotFound},
		{Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "dependency", KindDependency.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "internal", KindInternal.String())
}

func TestIsKindSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("deleting doctor: %w", Dependency("doctor has prescribed appointments"))

	assert.True(t, IsDependency(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsDependency(fmt.Errorf("plain error")))
}

func TestErrorIncludesCause(t *testing.T) {
	err := Internal(fmt.Errorf("connection refused"))

	assert.Contains(t, err.Error(), "connection refused")
	assert.EqualError(t, NotFound("appointment"), "appointment not found")
}
