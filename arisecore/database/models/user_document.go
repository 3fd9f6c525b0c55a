package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// UserDocument is one JSON document in the per-user durable store.
// Documents are namespaced by username so two accounts never collide on
// the same key.
type UserDocument struct {
	bun.BaseModel `bun:"table:user_documents,alias:ud"`

	ID        int64           `bun:"id,pk,autoincrement"`
	Username  string          `bun:"username,notnull"`
	DocKey    string          `bun:"doc_key,notnull"`
	Value     json.RawMessage `bun:"value,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"`
}
