package repositories

import (
	"context"
	"testing"

	"github.com/arisehq/arise/arisecore/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	_, err := repo.GetByUsername(ctx, "jinwoo")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := &models.User{Username: "jinwoo", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByUsername(ctx, "jinwoo")
	require.NoError(t, err)
	assert.Equal(t, "jinwoo", got.Username)
	assert.Zero(t, got.Currency)

	// Mutating the returned copy must not leak into the repository.
	got.Currency = 999
	again, err := repo.GetByUsername(ctx, "jinwoo")
	require.NoError(t, err)
	assert.Zero(t, again.Currency)
}

func TestMemoryUserRepositoryCurrency(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &models.User{Username: "jinwoo"}))

	require.NoError(t, repo.CreditCurrency(ctx, "jinwoo", 700))
	require.NoError(t, repo.CreditCurrency(ctx, "jinwoo", -200))

	balance, err := repo.GetCurrency(ctx, "jinwoo")
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	assert.ErrorIs(t, repo.CreditCurrency(ctx, "nobody", 1), ErrUserNotFound)
	_, err = repo.GetCurrency(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserRepositoryLoginFlag(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &models.User{Username: "jinwoo"}))

	require.NoError(t, repo.SetLoggedIn(ctx, "jinwoo", true))
	user, err := repo.GetByUsername(ctx, "jinwoo")
	require.NoError(t, err)
	assert.True(t, user.LoggedIn)

	require.NoError(t, repo.SetLoggedIn(ctx, "jinwoo", false))
	user, err = repo.GetByUsername(ctx, "jinwoo")
	require.NoError(t, err)
	assert.False(t, user.LoggedIn)

	assert.ErrorIs(t, repo.SetLoggedIn(ctx, "nobody", true), ErrUserNotFound)
}
