package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stxtips/stxtips/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrWalletExists = errors.New("wallet address already exists")
)

// Unique constraint names from the users schema.
const (
	emailConstraint  = "users_email_key"
	walletConstraint = "users_wallet_key"
)

// CreateUser inserts a new user into the database.
// A unique-constraint violation is the authoritative conflict signal and
// is mapped to ErrEmailExists or ErrWalletExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, wallet, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Wallet,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if conflictErr := uniqueViolation(err); conflictErr != nil {
			return conflictErr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, wallet, is_verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByWallet retrieves a user by their wallet address.
func (r *Repository) GetUserByWallet(ctx context.Context, wallet string) (*model.User, error) {
	query := `
		SELECT id, email, wallet, is_verified, created_at, updated_at
		FROM users
		WHERE wallet = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, wallet))
}

// MarkVerified flips is_verified to true for the user matching both the
// email and the wallet, in a single atomic statement. Returns the updated
// user, or ErrUserNotFound when no row matches.
func (r *Repository) MarkVerified(ctx context.Context, email, wallet string) (*model.User, error) {
	query := `
		UPDATE users
		SET is_verified = TRUE, updated_at = now()
		WHERE email = $1 AND wallet = $2
		RETURNING id, email, wallet, is_verified, created_at, updated_at
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email, wallet))
}

// scanUser scans a single user row.
func (r *Repository) scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Wallet,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

// uniqueViolation maps a PostgreSQL unique-constraint violation (23505)
// to the matching sentinel error. Returns nil for any other error.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch pgErr.ConstraintName {
	case emailConstraint:
		return ErrEmailExists
	case walletConstraint:
		return ErrWalletExists
	default:
		return nil
	}
}
