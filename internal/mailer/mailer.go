// Package mailer formats and delivers the application's notification
// emails: the verification link and the two tip notices.
package mailer

import "context"

// VerificationData populates the verification-link email template.
type VerificationData struct {
	Email           string
	VerificationURL string
}

// TipData populates both tip notification templates.
type TipData struct {
	SenderEmail     string
	SenderWallet    string
	RecipientEmail  string
	RecipientWallet string
	Amount          string
}

// Mailer delivers templated emails. Implementations report delivery
// failure through the returned error; there is no retry or queuing here.
type Mailer interface {
	SendVerificationLink(ctx context.Context, to string, data VerificationData) error
	SendTipSent(ctx context.Context, to string, data TipData) error
	SendTipReceived(ctx context.Context, to string, data TipData) error
}
