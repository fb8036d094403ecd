package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := NewNotFoundError("block not found")
	assert.Equal(t, "NOT_FOUND (2): block not found", err.Error())
}

func TestErrorStringWrapped(t *testing.T) {
	inner := NewInvalidArgumentError("bad hash")
	err := NewProcessingError("request failed", inner)

	assert.Equal(t, "PROCESSING (3): request failed -> INVALID_ARGUMENT (1): bad hash", err.Error())
}

func TestNewFormatsMessage(t *testing.T) {
	err := NewConfigurationError("missing setting %s", "sapi_listen")
	assert.Equal(t, "CONFIGURATION (4): missing setting sapi_listen", err.Error())
}

func TestNewWrapsTrailingError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewServiceError("cannot reach node on port %d", 9680, cause)

	var sErr *Error
	require.True(t, As(err, &sErr))
	assert.Equal(t, ERR_SERVICE_ERROR, sErr.Code())
	assert.Equal(t, "cannot reach node on port 9680", sErr.Message())
	require.NotNil(t, sErr.WrappedErr())
	assert.Contains(t, sErr.WrappedErr().Error(), "connection refused")
}

func TestIsMatchesOnCode(t *testing.T) {
	err := NewNotFoundError("no such transaction")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrServiceError))
}

func TestIsMatchesWrappedCode(t *testing.T) {
	err := NewProcessingError("lookup failed", NewNotFoundError("no such block"))

	assert.True(t, Is(err, ErrNotFound))
	assert.True(t, Is(err, ErrProcessing))
}

func TestUnwrap(t *testing.T) {
	inner := NewNotFoundError("gone")
	err := New(ERR_PROCESSING, "outer", inner)

	assert.Equal(t, inner, Unwrap(err))
	assert.Nil(t, Unwrap(inner))
}

func TestNilError(t *testing.T) {
	var err *Error

	assert.Equal(t, "<nil>", err.Error())
	assert.Equal(t, ERR_UNKNOWN, err.Code())
	assert.Empty(t, err.Message())
	assert.Nil(t, err.Unwrap())
}

func TestERRString(t *testing.T) {
	assert.Equal(t, "SERVICE_UNAVAILABLE", ERR_SERVICE_UNAVAILABLE.String())
	assert.Equal(t, "UNKNOWN", ERR(999).String())
}
