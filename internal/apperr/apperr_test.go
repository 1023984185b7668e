package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, TypeNotFound, TypeOf(NotFound("no such application", nil)))
	assert.Equal(t, TypeInvalidInput, TypeOf(fmt.Errorf("wrapped: %w", InvalidInput("bad", base))))
	assert.Equal(t, TypeInternal, TypeOf(base))
}

func TestErrorUnwrapAndStack(t *testing.T) {
	base := errors.New("dial tcp: refused")
	err := Unavailable("remote store unreachable", base)

	assert.ErrorIs(t, err, base)
	assert.NotEmpty(t, err.StackTrace())
	assert.Equal(t, "UNAVAILABLE: remote store unreachable: dial tcp: refused", err.Error())
	assert.Equal(t, "remote store unreachable", MessageOf(err))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
