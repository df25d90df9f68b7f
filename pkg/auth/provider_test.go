package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	provider := NewStaticProvider(map[string]*Principal{
		"tok-user":  {ID: "user-1", Email: "user@example.com"},
		"tok-admin": {ID: "admin-1", IsPlatformAdmin: true},
	})
	ctx := context.Background()

	t.Run("known token", func(t *testing.T) {
		principal, err := provider.Verify(ctx, "tok-user")
		require.NoError(t, err)
		assert.Equal(t, "user-1", principal.ID)
		assert.False(t, principal.IsPlatformAdmin)
	})

	t.Run("admin token", func(t *testing.T) {
		principal, err := provider.Verify(ctx, "tok-admin")
		require.NoError(t, err)
		assert.True(t, principal.IsPlatformAdmin)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := provider.Verify(ctx, "tok-nope")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("returned principal is a copy", func(t *testing.T) {
		p1, err := provider.Verify(ctx, "tok-user")
		require.NoError(t, err)
		p1.IsPlatformAdmin = true

		p2, err := provider.Verify(ctx, "tok-user")
		require.NoError(t, err)
		assert.False(t, p2.IsPlatformAdmin)
	})

	t.Run("nil table rejects everything", func(t *testing.T) {
		empty := NewStaticProvider(nil)
		_, err := empty.Verify(ctx, "anything")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
