package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stxtips/stxtips/internal/handler/dto"
	"github.com/stxtips/stxtips/internal/service"
)

// UserHandler handles HTTP requests for the user endpoints.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// ConnectWallet handles POST /api/v1/users/connect-wallet.
func (h *UserHandler) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.ConnectWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:  req.Email,
		Wallet: req.Wallet,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", result.User.ID,
		"wallet", result.User.Wallet,
		"email_sent", result.EmailSent,
	)

	message := fmt.Sprintf("Please check your email: %s to verify your account!", result.User.Email)
	if !result.EmailSent {
		message = "Account created, but the verification email could not be sent. " +
			"Request a new one via resend-verification."
	}

	writeJSON(w, http.StatusCreated, dto.ConnectWalletResponse{
		Success:           true,
		VerificationToken: result.Token,
		Message:           message,
	})
}

// VerifyAccount handles POST /api/v1/users/verify-account and the
// path-parameter variant /api/v1/users/verify-account/{token}.
// The token is accepted from exactly two locations: the URL path, then
// the JSON body.
func (h *UserHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")
	if tok == "" {
		var req dto.VerifyAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "MISSING_TOKEN", "Verification token is required")
			return
		}
		tok = req.Token
	}

	if tok == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_TOKEN", "Verification token is required")
		return
	}

	user, err := h.svc.Verify(r.Context(), tok)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_verified",
		"user_id", user.ID,
		"wallet", user.Wallet,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Account verified successfully",
	})
}

// ResendVerification handles POST /api/v1/users/resend-verification.
func (h *UserHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.ResendVerification(r.Context(), req.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("verification_resent",
		"user_id", result.User.ID,
		"wallet", result.User.Wallet,
	)

	writeJSON(w, http.StatusOK, dto.ConnectWalletResponse{
		Success:           true,
		VerificationToken: result.Token,
		Message:           fmt.Sprintf("Please check your email: %s to verify your account!", result.User.Email),
	})
}

// SendTip handles POST /api/v1/users/send-tip.
func (h *UserHandler) SendTip(w http.ResponseWriter, r *http.Request) {
	var req dto.SendTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	err := h.svc.NotifyTip(r.Context(), service.TipInput{
		SenderWallet:    req.SenderWallet,
		RecipientWallet: req.RecipientWallet,
		Amount:          req.Amount,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("tip_notified",
		"sender_wallet", req.SenderWallet,
		"recipient_wallet", req.RecipientWallet,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Tip notification sent successfully",
	})
}

// GetWallet handles GET /api/v1/users/wallet/{address}.
func (h *UserHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if address == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ADDRESS", "Wallet address is required")
		return
	}

	info, err := h.svc.GetByWallet(r.Context(), address)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletResponse{
		Success:    true,
		Wallet:     info.Wallet,
		IsVerified: info.IsVerified,
	})
}

// handleServiceError maps service errors to HTTP responses.
// Domain errors surface as 400 with a stable code; unknown failures as 500.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request")
	case errors.Is(err, service.ErrEmailExists):
		h.writeError(w, http.StatusBadRequest, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, service.ErrWalletExists):
		h.writeError(w, http.StatusBadRequest, "WALLET_EXISTS", "Wallet address already exists")
	case errors.Is(err, service.ErrInvalidVerificationLink):
		h.writeError(w, http.StatusBadRequest, "INVALID_VERIFICATION_LINK", "Invalid verification link")
	case errors.Is(err, service.ErrInvalidWallet):
		h.writeError(w, http.StatusBadRequest, "INVALID_WALLET", "Invalid wallet address")
	case errors.Is(err, service.ErrSenderNotVerified):
		h.writeError(w, http.StatusBadRequest, "SENDER_NOT_VERIFIED", "Sender account not verified")
	case errors.Is(err, service.ErrAlreadyVerified):
		h.writeError(w, http.StatusBadRequest, "ALREADY_VERIFIED", "Account already verified")
	case errors.Is(err, service.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
