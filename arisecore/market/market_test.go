package market

import (
	"context"
	"testing"

	"github.com/arisehq/arise/arisecore/database/repositories"
	"github.com/arisehq/arise/arisecore/identity"
	"github.com/arisehq/arise/arisecore/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *identity.Context) {
	t.Helper()
	ctx := context.Background()

	id := identity.New(repositories.NewMemoryUserRepository(), store.NewMemory())
	require.NoError(t, id.Register(ctx, "jinwoo", "arise"))
	require.NoError(t, id.Login(ctx, "jinwoo", "arise"))
	return NewService(id), id
}

func TestPurchaseDebitsWallet(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t)

	_, err := id.CreditCurrency(ctx, 5000)
	require.NoError(t, err)

	purchase, err := svc.Purchase(ctx, "streak-shield")
	require.NoError(t, err)
	assert.Equal(t, "streak-shield", purchase.ItemID)
	assert.Equal(t, int64(2500), purchase.Price)
	assert.Equal(t, int64(2500), id.Current().Currency)

	history := svc.Purchases(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, "streak-shield", history[0].ItemID)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t)

	_, err := id.CreditCurrency(ctx, 1000)
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, "title-monarch")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(1000), id.Current().Currency)
	assert.Empty(t, svc.Purchases(ctx))
}

func TestPurchaseUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Purchase(context.Background(), "no-such-item")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestPurchaseRequiresSession(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t)
	id.Logout(ctx)

	_, err := svc.Purchase(ctx, "streak-shield")
	assert.ErrorIs(t, err, identity.ErrNoSession)
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t)

	// Empty query returns the whole catalog.
	assert.Len(t, svc.Search(""), len(DefaultCatalog()))

	results := svc.Search("title")
	require.NotEmpty(t, results)
	for _, item := range results {
		assert.Contains(t, []string{"title-monarch", "title-shadow"}, item.ID)
	}

	// Fuzzy matching tolerates partial input.
	results = svc.Search("mdnght")
	require.NotEmpty(t, results)
	assert.Equal(t, "theme-midnight", results[0].ID)

	assert.Empty(t, svc.Search("zzzzzz"))
}
