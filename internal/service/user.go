// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/stxtips/stxtips/internal/mailer"
	"github.com/stxtips/stxtips/internal/model"
	"github.com/stxtips/stxtips/internal/repository"
	"github.com/stxtips/stxtips/internal/token"
)

// Service errors.
var (
	ErrInvalidRequest          = errors.New("invalid request")
	ErrEmailExists             = errors.New("email already exists")
	ErrWalletExists            = errors.New("wallet address already exists")
	ErrInvalidVerificationLink = errors.New("invalid verification link")
	ErrInvalidWallet           = errors.New("invalid wallet address")
	ErrSenderNotVerified       = errors.New("sender account not verified")
	ErrUserNotFound            = errors.New("user not found")
	ErrAlreadyVerified         = errors.New("account already verified")
)

// UserStore is the persistence boundary consumed by the service.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByWallet(ctx context.Context, wallet string) (*model.User, error)
	MarkVerified(ctx context.Context, email, wallet string) (*model.User, error)
}

// UserCache is the wallet-lookup cache boundary consumed by the service.
type UserCache interface {
	GetUser(ctx context.Context, wallet string) (*model.CachedUser, error)
	SetUser(ctx context.Context, user *model.User) error
	InvalidateUser(ctx context.Context, wallet string) error
}

// UserService handles registration, verification and tip notifications.
type UserService struct {
	store   UserStore
	cache   UserCache
	tokens  *token.Service
	mailer  mailer.Mailer
	baseURL string
	logger  *slog.Logger
}

// NewUserService creates a UserService. The cache may be nil, in which
// case wallet lookups always hit the store.
func NewUserService(store UserStore, cache UserCache, tokens *token.Service, m mailer.Mailer, baseURL string, logger *slog.Logger) *UserService {
	return &UserService{
		store:   store,
		cache:   cache,
		tokens:  tokens,
		mailer:  m,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// RegisterInput defines input for registering a wallet.
type RegisterInput struct {
	Email  string
	Wallet string
}

// RegisterResult is the outcome of a registration or a verification resend.
type RegisterResult struct {
	User *model.User
	// Token is the raw verification token, also embedded in the emailed link.
	Token string
	// EmailSent is false when the user was persisted but the verification
	// email could not be delivered. The record is kept; the caller can use
	// ResendVerification later.
	EmailSent bool
}

// Register creates an unverified user and dispatches the verification email.
//
// The token is derived from the in-memory user before persistence, so it
// is available even if a later step fails. The unique indexes on email and
// wallet are the authoritative conflict check; the lookups beforehand only
// produce friendlier fail-fast errors.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := strings.TrimSpace(input.Email)
	wallet := strings.TrimSpace(input.Wallet)

	if _, err := mail.ParseAddress(email); err != nil || wallet == "" {
		return nil, ErrInvalidRequest
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.store.GetUserByWallet(ctx, wallet); err == nil {
		return nil, ErrWalletExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check wallet: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:         ulid.Make().String(),
		Email:      email,
		Wallet:     wallet,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tok, err := s.tokens.Create(user.Email, user.Wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookups above;
		// the constraint violation is the one that counts.
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		case errors.Is(err, repository.ErrWalletExists):
			return nil, ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result := &RegisterResult{User: user, Token: tok, EmailSent: true}

	if err := s.sendVerificationLink(ctx, user, tok); err != nil {
		// The user stays registered; delivery can be retried via
		// ResendVerification.
		s.logger.Error("verification email failed",
			"email", user.Email,
			"wallet", user.Wallet,
			"error", err,
		)
		result.EmailSent = false
	}

	return result, nil
}

// ResendVerification mints a fresh token for an unverified user and sends
// the verification email again.
func (s *UserService) ResendVerification(ctx context.Context, email string) (*RegisterResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidRequest
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}

	tok, err := s.tokens.Create(user.Email, user.Wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	if err := s.sendVerificationLink(ctx, user, tok); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return &RegisterResult{User: user, Token: tok, EmailSent: true}, nil
}

// Verify validates a verification token and flips the matching user's
// verified flag in one atomic update. A bad token and a token whose user
// no longer exists surface the same way.
//
// Verification is idempotent: re-submitting a still-valid token succeeds
// again.
func (s *UserService) Verify(ctx context.Context, tokenString string) (*model.User, error) {
	payload, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrInvalidVerificationLink
	}

	user, err := s.store.MarkVerified(ctx, payload.Email, payload.Wallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidVerificationLink
		}
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, user.Wallet); err != nil {
			s.logger.Warn("failed to invalidate cached user", "wallet", user.Wallet, "error", err)
		}
	}

	return user, nil
}

// TipInput defines input for a tip notification.
type TipInput struct {
	SenderWallet    string
	RecipientWallet string
	Amount          string
}

// NotifyTip validates both parties and dispatches the paired notification
// emails concurrently. Both sends are awaited; if either fails the whole
// operation fails.
func (s *UserService) NotifyTip(ctx context.Context, input TipInput) error {
	if input.SenderWallet == "" || input.RecipientWallet == "" || input.Amount == "" {
		return ErrInvalidRequest
	}

	sender, err := s.store.GetUserByWallet(ctx, input.SenderWallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidWallet
		}
		return fmt.Errorf("failed to look up sender: %w", err)
	}

	recipient, err := s.store.GetUserByWallet(ctx, input.RecipientWallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidWallet
		}
		return fmt.Errorf("failed to look up recipient: %w", err)
	}

	// Recipient verification status is intentionally not checked.
	if !sender.IsVerified {
		return ErrSenderNotVerified
	}

	data := mailer.TipData{
		SenderEmail:     sender.Email,
		SenderWallet:    sender.Wallet,
		RecipientEmail:  recipient.Email,
		RecipientWallet: recipient.Wallet,
		Amount:          input.Amount,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.mailer.SendTipSent(gctx, sender.Email, data)
	})
	g.Go(func() error {
		return s.mailer.SendTipReceived(gctx, recipient.Email, data)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to send tip notifications: %w", err)
	}

	return nil
}

// WalletInfo is the public view of a wallet returned by lookups.
type WalletInfo struct {
	Wallet     string
	IsVerified bool
}

// GetByWallet returns the public info for a registered wallet, using the
// cache when available.
func (s *UserService) GetByWallet(ctx context.Context, wallet string) (*WalletInfo, error) {
	if wallet == "" {
		return nil, ErrInvalidRequest
	}

	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, wallet); err == nil {
			return &WalletInfo{Wallet: cached.Wallet, IsVerified: cached.Verified()}, nil
		}
	}

	user, err := s.store.GetUserByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("failed to cache user", "wallet", user.Wallet, "error", err)
		}
	}

	return &WalletInfo{Wallet: user.Wallet, IsVerified: user.IsVerified}, nil
}

// VerificationURL builds the emailed link for a raw token.
func (s *UserService) VerificationURL(tok string) string {
	return s.baseURL + "/api/v1/users/verify-account/" + tok
}

func (s *UserService) sendVerificationLink(ctx context.Context, user *model.User, tok string) error {
	return s.mailer.SendVerificationLink(ctx, user.Email, mailer.VerificationData{
		Email:           user.Email,
		VerificationURL: s.VerificationURL(tok),
	})
}
