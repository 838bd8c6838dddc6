package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Config holds the SMTP settings; an empty Host disables sending.
type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

func SendRegistrationEmail(log *zerolog.Logger, cfg Config, programName, status, recipientEmail string, timeoutMinutes int) error {
	if !cfg.Enabled() {
		log.Debug().Str("email", recipientEmail).Msg("mailer disabled, skipping notification")
		return nil
	}

	var subject, body string
	switch status {
	case "confirmed":
		subject = "Your registration is confirmed"
		body = fmt.Sprintf("Hello!\n\nYour registration for \"%s\" is confirmed. See you there!", programName)
	case "lapsed":
		subject = "Your registration has lapsed"
		body = fmt.Sprintf("Hello!\n\nYour registration for \"%s\" was cancelled because payment was not completed in time.", programName)
	case "pending":
		subject = "You started a registration"
		body = fmt.Sprintf("Hello!\n\nYou started registering for \"%s\". Complete payment within %d minutes or the registration will lapse.", programName, timeoutMinutes)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, recipientEmail, subject, body,
	)

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.From, []string{recipientEmail}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Msgf("email sent to %s (status: %s)", recipientEmail, status)
	return nil
}
