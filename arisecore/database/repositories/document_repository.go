package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arisehq/arise/arisecore/database/models"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
)

const documentCacheSize = 1024

// DocumentRepository is the Postgres-backed durable store. Reads go through
// an LRU cache that is invalidated on every write, so the cross-view poller
// never observes a value staler than the last Persist.
type DocumentRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewDocumentRepository(db *bun.DB) *DocumentRepository {
	cache, _ := lru.New(documentCacheSize)
	return &DocumentRepository{db: db, cache: cache}
}

func cacheKey(username, key string) string {
	return username + "\x00" + key
}

func (r *DocumentRepository) Load(ctx context.Context, username, key string) (json.RawMessage, error) {
	if cached, ok := r.cache.Get(cacheKey(username, key)); ok {
		return cached.(json.RawMessage), nil
	}

	doc := new(models.UserDocument)
	err := r.db.NewSelect().
		Model(doc).
		Where("username = ?", username).
		Where("doc_key = ?", key).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Error("Database error when loading document",
			slog.String("type", "db"),
			slog.String("operation", "Load"),
			slog.String("username", username),
			slog.String("doc_key", key),
			slog.String("error", err.Error()))
		return nil, err
	}

	r.cache.Add(cacheKey(username, key), doc.Value)
	return doc.Value, nil
}

func (r *DocumentRepository) Persist(ctx context.Context, username, key string, value json.RawMessage) error {
	doc := &models.UserDocument{
		Username:  username,
		DocKey:    key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(doc).
		On("CONFLICT (username, doc_key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to persist document %q: %w", key, err)
	}

	r.cache.Remove(cacheKey(username, key))

	slog.Debug("Document persisted",
		slog.String("type", "db"),
		slog.String("operation", "Persist"),
		slog.String("username", username),
		slog.String("doc_key", key),
		slog.Int("bytes", len(value)))
	return nil
}

func (r *DocumentRepository) Remove(ctx context.Context, username, key string) error {
	_, err := r.db.NewDelete().
		Model((*models.UserDocument)(nil)).
		Where("username = ?", username).
		Where("doc_key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove document %q: %w", key, err)
	}

	r.cache.Remove(cacheKey(username, key))
	return nil
}
