package finance

import (
	"context"
	"testing"

	"github.com/arisehq/arise/arisecore/database/repositories"
	"github.com/arisehq/arise/arisecore/identity"
	"github.com/arisehq/arise/arisecore/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	id := identity.New(repositories.NewMemoryUserRepository(), store.NewMemory())
	require.NoError(t, id.Register(ctx, "jinwoo", "arise"))
	require.NoError(t, id.Login(ctx, "jinwoo", "arise"))
	return NewService(id)
}

func TestLedgerDefaultCategories(t *testing.T) {
	svc := newTestService(t)

	ledger := svc.Ledger(context.Background())
	assert.Empty(t, ledger.Transactions)
	assert.Equal(t, []string{"Food", "Training", "Gear", "Subscriptions", "Other"}, ledger.Categories)
}

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddTransaction(ctx, 0, "Food", "free lunch", Expense)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AddTransaction(ctx, -20, "Food", "refund?", Expense)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AddTransaction(ctx, 20, "Food", "lunch", TransactionType("transfer"))
	assert.ErrorIs(t, err, ErrInvalidType)

	assert.Empty(t, svc.Ledger(ctx).Transactions)
}

func TestAddTransactionGrowsVocabulary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tx, err := svc.AddTransaction(ctx, 49.99, "Supplements", "creatine", Expense)
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Supplements", tx.Category)

	ledger := svc.Ledger(ctx)
	require.Len(t, ledger.Transactions, 1)
	assert.Contains(t, ledger.Categories, "Supplements")

	// Known category (case-insensitive) is not duplicated.
	_, err = svc.AddTransaction(ctx, 12, "food", "snacks", Expense)
	require.NoError(t, err)
	count := 0
	for _, c := range svc.Ledger(ctx).Categories {
		if c == "Food" || c == "food" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddTransactionBlankCategoryFallsBackToOther(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tx, err := svc.AddTransaction(ctx, 100, "   ", "paycheck slice", Income)
	require.NoError(t, err)
	assert.Equal(t, "Other", tx.Category)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	tx, err := svc.AddTransaction(ctx, 15, "Food", "lunch", Expense)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))
	assert.Empty(t, svc.Ledger(ctx).Transactions)

	require.NoError(t, svc.DeleteTransaction(ctx, "nope"))
}

func TestCategoryManagement(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.AddCategory(ctx, "Books"))
	assert.Contains(t, svc.Ledger(ctx).Categories, "Books")

	// Duplicate adds and blank names are no-ops.
	require.NoError(t, svc.AddCategory(ctx, "books"))
	require.NoError(t, svc.AddCategory(ctx, "  "))

	require.NoError(t, svc.RemoveCategory(ctx, "BOOKS"))
	assert.NotContains(t, svc.Ledger(ctx).Categories, "Books")

	require.NoError(t, svc.RemoveCategory(ctx, "never-existed"))
}

func TestRemoveCategoryKeepsTransactions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddTransaction(ctx, 30, "Gear", "chalk", Expense)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCategory(ctx, "Gear"))

	ledger := svc.Ledger(ctx)
	require.Len(t, ledger.Transactions, 1)
	assert.Equal(t, "Gear", ledger.Transactions[0].Category)
	assert.NotContains(t, ledger.Categories, "Gear")
}
