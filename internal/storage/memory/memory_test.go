package memory

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/glam-app/internal/storage"
	"github.com/magabrotheeeer/glam-app/internal/storage/storagetest"
)

func TestStorage_Contract(t *testing.T) {
	storagetest.Run(t, func(*testing.T) storage.Repository { return New() })
}

func TestStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateUser(ctx, "a@a.com", "A", "hash")
	require.NoError(t, err)

	u, err := s.FindByEmail(ctx, "a@a.com", true)
	require.NoError(t, err)
	u.IsAdmin = true

	again, err := s.FindByEmail(ctx, "a@a.com", false)
	require.NoError(t, err)
	assert.False(t, again.IsAdmin)
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ListProducts(ctx, true)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorage_ListUsersSameTimestamp(t *testing.T) {
	ctx := context.Background()
	s := New()
	tick := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return tick }

	for _, email := range []string{"c@a.com", "a@a.com", "b@a.com", "d@a.com"} {
		_, err := s.CreateUser(ctx, email, "U", "hash")
		require.NoError(t, err)
	}
	s.now = func() time.Time { return tick.Add(time.Second) }
	newest, err := s.CreateUser(ctx, "z@a.com", "Z", "hash")
	require.NoError(t, err)

	first, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, newest, first[0].ID)

	rest := make([]string, 0, 4)
	for _, u := range first[1:] {
		rest = append(rest, u.ID)
	}
	assert.True(t, sort.StringsAreSorted(rest))

	for i := 0; i < 10; i++ {
		again, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
