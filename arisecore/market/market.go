// Package market is the in-app item shop. Purchases debit the wallet
// through the identity context; the purchase history is its own per-user
// document.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arisehq/arise/arisecore/identity"
	"github.com/sahilm/fuzzy"
)

// DocumentKey is the durable-store key of the per-user purchase history.
const DocumentKey = "market_purchases"

var (
	ErrUnknownItem       = errors.New("unknown market item")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

type Purchase struct {
	ItemID string    `json:"item_id"`
	Price  int64     `json:"price"`
	Date   time.Time `json:"date"`
}

// DefaultCatalog is the static shop inventory.
func DefaultCatalog() []Item {
	return []Item{
		{ID: "streak-shield", Name: "Streak Shield", Description: "Cosmetic banner for a protected streak", Price: 2500},
		{ID: "title-monarch", Name: "Title: Monarch", Description: "Profile title unlock", Price: 10000},
		{ID: "theme-midnight", Name: "Midnight Theme", Description: "Dashboard color theme", Price: 1500},
		{ID: "badge-frame", Name: "Gilded Badge Frame", Description: "Frame around badge icons", Price: 4000},
		{ID: "title-shadow", Name: "Title: Shadow", Description: "Profile title unlock", Price: 6000},
	}
}

type Service struct {
	id      *identity.Context
	catalog []Item
}

func NewService(id *identity.Context) *Service {
	return &Service{id: id, catalog: DefaultCatalog()}
}

func (s *Service) Items() []Item {
	return s.catalog
}

// Purchase debits the item's price from the wallet and appends to the
// purchase history. The wallet may not go negative.
func (s *Service) Purchase(ctx context.Context, itemID string) (*Purchase, error) {
	var item *Item
	for i := range s.catalog {
		if s.catalog[i].ID == itemID {
			item = &s.catalog[i]
			break
		}
	}
	if item == nil {
		return nil, ErrUnknownItem
	}

	session := s.id.Current()
	if session == nil {
		return nil, identity.ErrNoSession
	}
	if session.Currency < item.Price {
		return nil, ErrInsufficientFunds
	}

	if _, err := s.id.CreditCurrency(ctx, -item.Price); err != nil {
		return nil, fmt.Errorf("failed to debit purchase: %w", err)
	}

	purchase := Purchase{ItemID: item.ID, Price: item.Price, Date: time.Now()}

	var history []Purchase
	s.id.Load(ctx, DocumentKey, &history)
	history = append(history, purchase)
	if err := s.id.Persist(ctx, DocumentKey, history); err != nil {
		return nil, err
	}

	slog.Info("Item purchased",
		slog.String("type", "engine"),
		slog.String("item_id", item.ID),
		slog.Int64("price", item.Price))
	return &purchase, nil
}

// Purchases returns the user's purchase history.
func (s *Service) Purchases(ctx context.Context) []Purchase {
	var history []Purchase
	s.id.Load(ctx, DocumentKey, &history)
	return history
}

type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Name }
func (s itemSource) Len() int            { return len(s) }

// Search fuzzy-matches the query against item names, best matches first.
// An empty query returns the full catalog.
func (s *Service) Search(query string) []Item {
	if query == "" {
		return s.catalog
	}

	matches := fuzzy.FindFrom(query, itemSource(s.catalog))
	results := make([]Item, 0, len(matches))
	for _, m := range matches {
		results = append(results, s.catalog[m.Index])
	}
	return results
}
