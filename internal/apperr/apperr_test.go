package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	plain := Validation("timeframe out of range")
	assert.Equal(t, "VALIDATION: timeframe out of range", plain.Error())

	cause := errors.New("dial tcp: connection refused")
	wrapped := Network("failed to list repositories", cause)
	assert.Contains(t, wrapped.Error(), "NETWORK")
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.ErrorIs(t, wrapped, cause)
}

func TestCodeHelpers(t *testing.T) {
	assert.True(t, IsAuth(Auth("bad token", nil)))
	assert.True(t, IsRateLimited(RateLimited("quota exhausted", nil)))
	assert.True(t, IsNotFound(NotFound("repo gone", nil)))
	assert.True(t, IsValidation(Validation("bad input")))

	// Classification survives another layer of wrapping.
	wrapped := fmt.Errorf("build report: %w", NotFound("repo gone", nil))
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsAuth(nil))
}
