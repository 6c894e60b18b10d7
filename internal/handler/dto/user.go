// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ConnectWalletRequest represents the request body for registering a wallet.
type ConnectWalletRequest struct {
	Email  string `json:"email"`
	Wallet string `json:"wallet"`
}

// ConnectWalletResponse is returned after a successful registration or a
// verification resend.
type ConnectWalletResponse struct {
	Success           bool   `json:"success"`
	VerificationToken string `json:"verificationToken"`
	Message           string `json:"message"`
}

// VerifyAccountRequest carries a verification token in the request body.
// The token may alternatively arrive as a path parameter.
type VerifyAccountRequest struct {
	Token string `json:"token"`
}

// ResendVerificationRequest asks for a fresh verification email.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// SendTipRequest represents a tip between two wallets. Amount is a string;
// crypto amounts must not round-trip through floats.
type SendTipRequest struct {
	SenderWallet    string `json:"senderWallet"`
	RecipientWallet string `json:"recipientWallet"`
	Amount          string `json:"amount"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WalletResponse is the public view of a registered wallet.
type WalletResponse struct {
	Success    bool   `json:"success"`
	Wallet     string `json:"wallet"`
	IsVerified bool   `json:"isVerified"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
