package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email_constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			want: ErrEmailExists,
		},
		{
			name: "wallet_constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_wallet_key"},
			want: ErrWalletExists,
		},
		{
			name: "unknown_constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "other_key"},
			want: nil,
		},
		{
			name: "other_pg_error",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "users_email_key"},
			want: nil,
		},
		{
			name: "plain_error",
			err:  errors.New("connection refused"),
			want: nil,
		},
		{
			name: "wrapped_pg_error",
			err:  wrap(&pgconn.PgError{Code: "23505", ConstraintName: "users_wallet_key"}),
			want: ErrWalletExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniqueViolation(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("uniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("exec failed"), err)
}
