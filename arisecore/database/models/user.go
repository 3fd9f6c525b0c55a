package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the per-account registry row. The wallet balance lives here; all
// feature state (tasks, schedule, logs) is stored as per-user documents.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Username     string `bun:"username,notnull,unique"`
	PasswordHash string `bun:"password_hash,notnull"`

	// Currency is the wallet balance adjusted by reward payouts and
	// market purchases.
	Currency int64 `bun:"currency,notnull,default:0"`

	LoggedIn bool `bun:"logged_in,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
