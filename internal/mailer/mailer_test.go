package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRender_VerificationLink(t *testing.T) {
	subject, body, err := render(kindVerificationLink, VerificationData{
		Email:           "a@x.com",
		VerificationURL: "https://api.stxtips.io/api/v1/users/verify-account/tok123",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if subject != "Verify your STX Tips account" {
		t.Errorf("unexpected subject: %q", subject)
	}

	if !strings.Contains(body, "https://api.stxtips.io/api/v1/users/verify-account/tok123") {
		t.Errorf("body does not contain verification URL:\n%s", body)
	}
}

func TestRender_TipTemplates(t *testing.T) {
	data := TipData{
		SenderEmail:     "sender@x.com",
		SenderWallet:    "SP1SENDER",
		RecipientEmail:  "recipient@x.com",
		RecipientWallet: "SP2RECIPIENT",
		Amount:          "42.5",
	}

	tests := []struct {
		name     string
		kind     string
		contains []string
	}{
		{
			name:     "tip_sent",
			kind:     kindTipSent,
			contains: []string{"42.5 STX", "SP2RECIPIENT"},
		},
		{
			name:     "tip_received",
			kind:     kindTipReceived,
			contains: []string{"42.5 STX", "SP1SENDER", "SP2RECIPIENT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, err := render(tt.kind, data)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if subject == "" {
				t.Error("expected non-empty subject")
			}
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q:\n%s", want, body)
				}
			}
		})
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, _, err := render("nonsense", nil); err == nil {
		t.Fatal("expected error for unknown template kind")
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("no-reply@stxtips.io", "a@x.com", "Hello", "Body text")

	text := string(msg)
	for _, want := range []string{
		"From: no-reply@stxtips.io\r\n",
		"To: a@x.com\r\n",
		"Subject: Hello\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"\r\n\r\nBody text\r\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q:\n%s", want, text)
		}
	}

	// Headers must come before the body separator.
	if !bytes.HasPrefix(msg, []byte("From: ")) {
		t.Errorf("message does not start with From header:\n%s", text)
	}
}

func TestLogMailer_Sends(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := NewLog(logger)

	ctx := context.Background()

	if err := m.SendVerificationLink(ctx, "a@x.com", VerificationData{VerificationURL: "http://x/t"}); err != nil {
		t.Fatalf("SendVerificationLink failed: %v", err)
	}
	if err := m.SendTipSent(ctx, "a@x.com", TipData{Amount: "1"}); err != nil {
		t.Fatalf("SendTipSent failed: %v", err)
	}
	if err := m.SendTipReceived(ctx, "b@x.com", TipData{Amount: "1"}); err != nil {
		t.Fatalf("SendTipReceived failed: %v", err)
	}

	out := buf.String()
	if strings.Count(out, "email not sent") != 3 {
		t.Errorf("expected 3 log lines, got:\n%s", out)
	}
}

func TestNewSMTP_AuthHost(t *testing.T) {
	// No username: no auth configured.
	m := NewSMTP("smtp.example.com:587", "", "", "from@x.com")
	if m.auth != nil {
		t.Error("expected nil auth without username")
	}

	m = NewSMTP("smtp.example.com:587", "user", "pass", "from@x.com")
	if m.auth == nil {
		t.Error("expected auth with username")
	}
}

func TestAuthHost(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"smtp.example.com:587", "smtp.example.com"},
		{"[::1]:587", "::1"},
		{"127.0.0.1:25", "127.0.0.1"},
		{"smtp.example.com", "smtp.example.com"},
	}

	for _, tt := range tests {
		if got := authHost(tt.addr); got != tt.want {
			t.Errorf("authHost(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
