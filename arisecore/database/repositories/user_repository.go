package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arisehq/arise/arisecore/database/models"
	"github.com/uptrace/bun"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	CreditCurrency(ctx context.Context, username string, delta int64) error
	GetCurrency(ctx context.Context, username string) (int64, error)
	SetLoggedIn(ctx context.Context, username string, loggedIn bool) error
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		slog.Error("Database error when getting user",
			slog.String("type", "db"),
			slog.String("operation", "GetByUsername"),
			slog.String("username", username),
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}

func (r *userRepository) CreditCurrency(ctx context.Context, username string, delta int64) error {
	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("currency = currency + ?", delta).
		Set("updated_at = ?", time.Now()).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to credit currency: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	slog.Debug("Wallet adjusted",
		slog.String("type", "db"),
		slog.String("operation", "CreditCurrency"),
		slog.String("username", username),
		slog.Int64("delta", delta))
	return nil
}

func (r *userRepository) GetCurrency(ctx context.Context, username string) (int64, error) {
	var user models.User
	err := r.db.NewSelect().
		Model(&user).
		Column("currency").
		Where("username = ?", username).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	return user.Currency, nil
}

func (r *userRepository) SetLoggedIn(ctx context.Context, username string, loggedIn bool) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("logged_in = ?", loggedIn).
		Set("updated_at = ?", time.Now()).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update logged_in: %w", err)
	}
	return nil
}
