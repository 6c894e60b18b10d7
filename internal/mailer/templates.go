package mailer

import (
	"fmt"
	"strings"
	"text/template"
)

// Template kinds, one per outbound email.
const (
	kindVerificationLink = "verification_link"
	kindTipSent          = "tip_sent"
	kindTipReceived      = "tip_received"
)

// Subjects per template kind.
var subjects = map[string]string{
	kindVerificationLink: "Verify your STX Tips account",
	kindTipSent:          "Your tip is on its way",
	kindTipReceived:      "You received a tip!",
}

var bodies = template.Must(template.New("mails").Parse(`
{{- define "verification_link" -}}
Hi,

Thanks for connecting your wallet to STX Tips. Please confirm that you
own this email address by opening the link below:

{{.VerificationURL}}

If you did not register, you can safely ignore this email.

- The STX Tips team
{{- end -}}

{{- define "tip_sent" -}}
Hi,

You sent a tip of {{.Amount}} STX to {{.RecipientWallet}}.

- The STX Tips team
{{- end -}}

{{- define "tip_received" -}}
Hi,

Your wallet {{.RecipientWallet}} received a tip of {{.Amount}} STX
from {{.SenderWallet}}.

- The STX Tips team
{{- end -}}
`))

// render produces the subject and plain-text body for a template kind.
func render(kind string, data any) (subject, body string, err error) {
	subject, ok := subjects[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template: %s", kind)
	}

	var buf strings.Builder
	if err := bodies.ExecuteTemplate(&buf, kind, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s: %w", kind, err)
	}

	return subject, buf.String(), nil
}
