// Package finance is the personal-finance ledger: a parallel record of
// income and expenses with a user-editable category vocabulary. It is not
// the wallet; reward payouts and market purchases never touch it.
package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arisehq/arise/arisecore/identity"
	"github.com/google/uuid"
)

// DocumentKey is the durable-store key of the per-user ledger document.
const DocumentKey = "finance_ledger"

var (
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	ErrInvalidType   = errors.New("transaction type must be income or expense")
)

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type Transaction struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
}

// Ledger is the persisted document: append-only transactions plus the
// open category vocabulary.
type Ledger struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []string      `json:"categories"`
}

func defaultLedger() Ledger {
	return Ledger{
		Categories: []string{"Food", "Training", "Gear", "Subscriptions", "Other"},
	}
}

type Service struct {
	id *identity.Context
}

func NewService(id *identity.Context) *Service {
	return &Service{id: id}
}

// Ledger returns the persisted ledger, or the default vocabulary when the
// document is absent or malformed.
func (s *Service) Ledger(ctx context.Context) Ledger {
	ledger := defaultLedger()
	s.id.Load(ctx, DocumentKey, &ledger)
	if len(ledger.Categories) == 0 {
		ledger.Categories = defaultLedger().Categories
	}
	return ledger
}

// AddTransaction appends a validated transaction. A category not yet in
// the vocabulary is added to it.
func (s *Service) AddTransaction(ctx context.Context, amount float64, category, description string, txType TransactionType) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if txType != Income && txType != Expense {
		return nil, ErrInvalidType
	}

	ledger := s.Ledger(ctx)

	category = strings.TrimSpace(category)
	if category == "" {
		category = "Other"
	}
	if !containsFold(ledger.Categories, category) {
		ledger.Categories = append(ledger.Categories, category)
	}

	tx := Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        time.Now(),
		Type:        txType,
	}
	ledger.Transactions = append(ledger.Transactions, tx)

	if err := s.id.Persist(ctx, DocumentKey, ledger); err != nil {
		return nil, fmt.Errorf("failed to persist ledger: %w", err)
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction by id. Unknown ids are no-ops.
func (s *Service) DeleteTransaction(ctx context.Context, txID string) error {
	ledger := s.Ledger(ctx)
	kept := ledger.Transactions[:0]
	removed := false
	for _, tx := range ledger.Transactions {
		if tx.ID == txID {
			removed = true
			continue
		}
		kept = append(kept, tx)
	}
	if !removed {
		return nil
	}
	ledger.Transactions = kept
	return s.id.Persist(ctx, DocumentKey, ledger)
}

// AddCategory grows the vocabulary; duplicates (case-insensitive) are
// no-ops.
func (s *Service) AddCategory(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil
	}

	ledger := s.Ledger(ctx)
	if containsFold(ledger.Categories, category) {
		return nil
	}
	ledger.Categories = append(ledger.Categories, category)
	return s.id.Persist(ctx, DocumentKey, ledger)
}

// RemoveCategory shrinks the vocabulary. Existing transactions keep their
// category string; the vocabulary only drives future entry forms.
func (s *Service) RemoveCategory(ctx context.Context, category string) error {
	ledger := s.Ledger(ctx)
	kept := ledger.Categories[:0]
	removed := false
	for _, c := range ledger.Categories {
		if strings.EqualFold(c, category) {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil
	}
	ledger.Categories = kept
	return s.id.Persist(ctx, DocumentKey, ledger)
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
