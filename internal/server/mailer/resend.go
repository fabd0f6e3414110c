package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer implements Mailer on top of the Resend API.
type ResendMailer struct {
	client *resend.Client
	sender string
}

// NewResendMailer constructs a mailer sending from the given address.
func NewResendMailer(apiKey, sender string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		sender: sender,
	}
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	body := fmt.Sprintf("You are receiving this email because you (or someone else) have requested the reset of a password.\n"+
		"Please make a change request to:\n\n%s", resetURL)

	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{email},
		Subject: "Password Reset Request",
		Text:    body,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("error sending reset email: %w", err)
	}
	return nil
}
