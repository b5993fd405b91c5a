// Package storagetest содержит общий набор проверок для реализаций storage.Repository.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// Factory возвращает пустое хранилище для одного подтеста.
type Factory func(t *testing.T) storage.Repository

// Run прогоняет все проверки контракта.
func Run(t *testing.T, newRepo Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newRepo(t)) })
	t.Run("upsert admin", func(t *testing.T) { testUpsertAdmin(t, newRepo(t)) })
	t.Run("products", func(t *testing.T) { testProducts(t, newRepo(t)) })
	t.Run("product listing", func(t *testing.T) { testProductListing(t, newRepo(t)) })
}

func testUsers(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, "a@a.com", "A", "hash-a")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = repo.CreateUser(ctx, "a@a.com", "Other", "hash-x")
	require.ErrorIs(t, err, storage.ErrConflict)

	u, err := repo.FindByEmail(ctx, "a@a.com", false)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "A", u.Name)
	assert.False(t, u.IsAdmin)
	assert.Empty(t, u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	u, err = repo.FindByEmail(ctx, "a@a.com", true)
	require.NoError(t, err)
	assert.Equal(t, "hash-a", u.PasswordHash)

	_, err = repo.FindByEmail(ctx, "missing@a.com", true)
	require.ErrorIs(t, err, storage.ErrNotFound)

	time.Sleep(5 * time.Millisecond)
	_, err = repo.CreateUser(ctx, "b@b.com", "B", "hash-b")
	require.NoError(t, err)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@b.com", users[0].Email)
	assert.Equal(t, "a@a.com", users[1].Email)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func testUpsertAdmin(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	created, err := repo.UpsertAdmin(ctx, "admin@admin.com", "ADMIN", "hash-1")
	require.NoError(t, err)
	assert.True(t, created)

	u, err := repo.FindByEmail(ctx, "admin@admin.com", true)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "hash-1", u.PasswordHash)

	_, err = repo.CreateUser(ctx, "user@shop.com", "User", "hash-u")
	require.NoError(t, err)

	created, err = repo.UpsertAdmin(ctx, "user@shop.com", "Promoted", "hash-2")
	require.NoError(t, err)
	assert.False(t, created)

	u, err = repo.FindByEmail(ctx, "user@shop.com", true)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "Promoted", u.Name)
	assert.Equal(t, "hash-2", u.PasswordHash)
}

func testProducts(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	p := models.Product{
		ID:          "lipstick-1",
		Name:        "Lipstick",
		Price:       12.5,
		Description: "red",
		ImageURL:    "https://cdn/img.png",
		VideoID:     "abc",
		Stock:       4,
		IsActive:    true,
	}
	require.NoError(t, repo.CreateProduct(ctx, p))
	require.ErrorIs(t, repo.CreateProduct(ctx, p), storage.ErrConflict)

	got, err := repo.GetProduct(ctx, "lipstick-1")
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	_, err = repo.GetProduct(ctx, "nope")
	require.ErrorIs(t, err, storage.ErrNotFound)

	replaced := models.Product{ID: "lipstick-1", Name: "Lipstick v2"}
	require.NoError(t, repo.UpdateProduct(ctx, replaced))
	got, err = repo.GetProduct(ctx, "lipstick-1")
	require.NoError(t, err)
	assert.Equal(t, replaced, *got)

	require.ErrorIs(t, repo.UpdateProduct(ctx, models.Product{ID: "nope"}), storage.ErrNotFound)

	require.NoError(t, repo.DeleteProduct(ctx, "lipstick-1"))
	require.ErrorIs(t, repo.DeleteProduct(ctx, "lipstick-1"), storage.ErrNotFound)
	_, err = repo.GetProduct(ctx, "lipstick-1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testProductListing(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	for _, p := range []models.Product{
		{ID: "c", Name: "Cream", Stock: 2, IsActive: true},
		{ID: "a", Name: "Antifaz", Stock: 1, IsActive: true},
		{ID: "z", Name: "Zero stock", Stock: 0, IsActive: true},
		{ID: "i", Name: "Inactive", Stock: 9, IsActive: false},
	} {
		require.NoError(t, repo.CreateProduct(ctx, p))
	}

	visible, err := repo.ListProducts(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "Antifaz", visible[0].Name)
	assert.Equal(t, "Cream", visible[1].Name)
	for _, p := range visible {
		assert.True(t, p.IsActive)
		assert.Positive(t, p.Stock)
	}

	all, err := repo.ListProducts(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 4)
	names := make([]string, 0, len(all))
	for _, p := range all {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Antifaz", "Cream", "Inactive", "Zero stock"}, names)
}
