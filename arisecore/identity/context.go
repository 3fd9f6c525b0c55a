// Package identity holds the logged-in account, its wallet, and typed
// access to the per-user document store. Every feature service receives a
// *Context by injection; nothing in the engine reaches for a global.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/arisehq/arise/arisecore/database/models"
	"github.com/arisehq/arise/arisecore/database/repositories"
	"github.com/arisehq/arise/arisecore/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoSession       = errors.New("no user is logged in")
	ErrUsernameTaken   = errors.New("username already registered")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrEmptyCredential = errors.New("username and password are required")
)

// Session is a read-only view of the current account.
type Session struct {
	Username string
	Currency int64
}

type Context struct {
	users repositories.UserRepository
	docs  store.Store

	mu      sync.RWMutex
	current *Session
}

func New(users repositories.UserRepository, docs store.Store) *Context {
	return &Context{users: users, docs: docs}
}

func (c *Context) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredential
	}

	if _, err := c.users.GetByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := c.users.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered",
		slog.String("type", "engine"),
		slog.String("username", username))
	return nil
}

func (c *Context) Login(ctx context.Context, username, password string) error {
	user, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrBadCredentials
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrBadCredentials
	}

	if err := c.users.SetLoggedIn(ctx, username, true); err != nil {
		return err
	}

	c.mu.Lock()
	c.current = &Session{Username: user.Username, Currency: user.Currency}
	c.mu.Unlock()

	slog.Info("User logged in",
		slog.String("type", "engine"),
		slog.String("username", username))
	return nil
}

func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	current := c.current
	c.current = nil
	c.mu.Unlock()

	if current == nil {
		return nil
	}
	return c.users.SetLoggedIn(ctx, current.Username, false)
}

// Current returns a copy of the active session, or nil when logged out.
func (c *Context) Current() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil
	}
	out := *c.current
	return &out
}

// CreditCurrency adjusts the wallet by delta (negative for purchases) and
// returns the new balance.
func (c *Context) CreditCurrency(ctx context.Context, delta int64) (int64, error) {
	session := c.Current()
	if session == nil {
		return 0, ErrNoSession
	}

	if err := c.users.CreditCurrency(ctx, session.Username, delta); err != nil {
		return 0, err
	}

	balance, err := c.users.GetCurrency(ctx, session.Username)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	if c.current != nil && c.current.Username == session.Username {
		c.current.Currency = balance
	}
	c.mu.Unlock()

	return balance, nil
}

// Persist serializes v and writes it under the current user's namespace.
func (c *Context) Persist(ctx context.Context, key string, v any) error {
	session := c.Current()
	if session == nil {
		return ErrNoSession
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}
	return c.docs.Persist(ctx, session.Username, key, raw)
}

// Load reads the current user's document into dst. It reports false when
// the document is absent, unreadable, or fails to decode into dst's shape;
// the caller then proceeds with its defaults. Stored state is never trusted
// to match the expected shape.
func (c *Context) Load(ctx context.Context, key string, dst any) bool {
	session := c.Current()
	if session == nil {
		return false
	}

	raw, err := c.docs.Load(ctx, session.Username, key)
	if err != nil {
		slog.Error("Failed to load document",
			slog.String("type", "db"),
			slog.String("doc_key", key),
			slog.Any("error", err))
		return false
	}
	if raw == nil {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("Discarding malformed document",
			slog.String("type", "engine"),
			slog.String("doc_key", key),
			slog.Any("error", err))
		return false
	}
	return true
}

// Remove deletes the current user's document under key.
func (c *Context) Remove(ctx context.Context, key string) error {
	session := c.Current()
	if session == nil {
		return ErrNoSession
	}
	return c.docs.Remove(ctx, session.Username, key)
}
