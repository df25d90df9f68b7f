package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBearer(t *testing.T) {
	t.Run("valid header", func(t *testing.T) {
		token, err := ParseBearer("Bearer abc123")
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := ParseBearer("")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := ParseBearer("Basic abc123")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("scheme is case sensitive", func(t *testing.T) {
		_, err := ParseBearer("bearer abc123")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ParseBearer("Bearer ")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("no token part", func(t *testing.T) {
		_, err := ParseBearer("Bearer")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
