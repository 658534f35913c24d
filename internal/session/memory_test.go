package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create and resolve", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		p := Principal{UserID: uuid.New(), Username: "avargas", Admin: true}

		token, err := store.Create(ctx, p)
		require.NoError(t, err)
		assert.Len(t, token, 64)

		got, err := store.Get(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, p, *got)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		p := Principal{UserID: uuid.New()}

		a, err := store.Create(ctx, p)
		require.NoError(t, err)
		b, err := store.Create(ctx, p)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("unknown token", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		_, err := store.Get(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("delete invalidates", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		token, err := store.Create(ctx, Principal{UserID: uuid.New()})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, token))

		_, err = store.Get(ctx, token)
		assert.ErrorIs(t, err, ErrNoSession)

		// Unknown tokens are not an error.
		require.NoError(t, store.Delete(ctx, token))
	})

	t.Run("expires without activity", func(t *testing.T) {
		store := NewMemoryStore(50 * time.Millisecond)
		token, err := store.Create(ctx, Principal{UserID: uuid.New()})
		require.NoError(t, err)

		time.Sleep(80 * time.Millisecond)

		_, err = store.Get(ctx, token)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("activity refreshes expiry", func(t *testing.T) {
		store := NewMemoryStore(80 * time.Millisecond)
		token, err := store.Create(ctx, Principal{UserID: uuid.New()})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			time.Sleep(50 * time.Millisecond)
			_, err = store.Get(ctx, token)
			require.NoError(t, err)
		}
	})
}
