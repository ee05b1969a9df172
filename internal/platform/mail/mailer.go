// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
Package mail implements outbound transactional email delivery over SMTP.

The auth service depends only on the [Mailer] interface; the SMTP dialer is
injected at startup. Delivery failures must never surface to API clients
(the password-reset flow is anti-enumeration by design), so callers log and
drop errors rather than propagating them.
*/
package mail

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional emails to a single recipient.
type Mailer interface {
	// SendPasswordReset delivers the raw reset token to the account's email.
	SendPasswordReset(toEmail, rawToken string) error
}

// # SMTP Implementation

// SMTPMailer sends email through a configured SMTP relay using gomail.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	appName string
	appURL  string
	logger  *slog.Logger
}

// NewSMTPMailer constructs an [SMTPMailer] from SMTP credentials.
func NewSMTPMailer(host string, port int, username, password, from, appName, appURL string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		appName: appName,
		appURL:  appURL,
		logger:  logger,
	}
}

// SendPasswordReset delivers a password-reset email containing the reset link.
//
// The raw token appears only in this email and in the client's subsequent
// reset request; storage holds its hash exclusively.
func (mailer *SMTPMailer) SendPasswordReset(toEmail, rawToken string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", mailer.from)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", fmt.Sprintf("[%s] Password reset request", mailer.appName))

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", mailer.appURL, rawToken)

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>%s password reset</h2>
    <p>We received a request to reset the password for this account.</p>
    <p><a href="%s">Reset your password</a></p>
    <p>The link is valid for 10 minutes. If you did not request a reset,
    you can safely ignore this email.</p>
  </div>
</body>
</html>`, mailer.appName, resetLink)
	message.SetBody("text/html", body)

	if err := mailer.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("mail: send password reset: %w", err)
	}

	mailer.logger.Info("password_reset_email_sent", slog.String("to", toEmail))
	return nil
}

// # Log-Only Implementation

// LogMailer writes the reset link to the structured log instead of sending it.
// Used in development and tests, where no SMTP relay is available.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the raw token for manual retrieval.
func (mailer *LogMailer) SendPasswordReset(toEmail, rawToken string) error {
	mailer.logger.Info("password_reset_token_issued",
		slog.String("to", toEmail),
		slog.String("token", rawToken),
	)
	return nil
}
