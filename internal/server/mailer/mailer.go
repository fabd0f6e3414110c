// Package mailer delivers outgoing email for the password-reset flow.
package mailer

import "context"

// Mailer sends transactional email. The reset token travels only inside the
// link; it is never persisted in raw form.
type Mailer interface {
	// SendPasswordReset emails a reset link carrying the raw token to the
	// given address.
	SendPasswordReset(ctx context.Context, email, resetURL string) error
}
