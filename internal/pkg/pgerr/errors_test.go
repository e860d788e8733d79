package pgerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	assert.NotEqual(t, "changed", e.Message)
	assert.Equal(t, "changed", changedE.Message)
}

func TestIsNotFound(t *testing.T) {
	t.Run("Sentinel", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrNotFound))
	})

	t.Run("CustomizedMessage", func(t *testing.T) {
		err := ErrNotFound.Msg("boss %q not found", "Malenia")
		assert.True(t, IsNotFound(err))
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := errors.Wrap(ErrNotFound, "loading weapon")
		assert.True(t, IsNotFound(err))
	})

	t.Run("OtherCodes", func(t *testing.T) {
		assert.False(t, IsNotFound(ErrInvalidReq))
		assert.False(t, IsNotFound(errors.New("boom")))
		assert.False(t, IsNotFound(nil))
	})
}

func TestFrom(t *testing.T) {
	pe, ok := From(errors.Wrap(ErrForbidden, "progress"))
	assert.True(t, ok)
	assert.Equal(t, 403, pe.StatusCode)

	_, ok = From(errors.New("plain"))
	assert.False(t, ok)
}
