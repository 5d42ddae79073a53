package utils

import (
	"fmt"
	"net/smtp"
	"strings"
)

// MailSender delivers the password-reset link. The controllers only
// depend on this interface; tests swap in a recorder.
type MailSender interface {
	SendPasswordResetMail(toEmail string, token string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	AppName  string
	// ResetURL is the front-end page the emailed link points at; the
	// token and email are appended to it.
	ResetURL string
}

type EmailManager struct {
	Config *SMTPConfig
}

func NewEmailManager(config *SMTPConfig) *EmailManager {
	return &EmailManager{
		Config: config,
	}
}

// send is a private helper that handles the actual SMTP handshake and delivery
func (em *EmailManager) send(toEmail string, subject string, body string) error {
	smtpAddr := fmt.Sprintf("%s:%d", em.Config.Host, em.Config.Port)

	// RFC 822 headers, CRLF separated, blank line before the body
	headers := []string{
		fmt.Sprintf("From: %s", em.Config.User),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}

	message := strings.Join(headers, "\r\n")

	auth := smtp.PlainAuth("", em.Config.User, em.Config.Password, em.Config.Host)

	return smtp.SendMail(smtpAddr, auth, em.Config.User, []string{toEmail}, []byte(message))
}

// SendPasswordResetMail sends the reset link embedding the token and the
// recipient's email.
func (em *EmailManager) SendPasswordResetMail(toEmail string, token string) error {
	subject := fmt.Sprintf("%s - Reset Your Password", em.Config.AppName)

	resetLink := fmt.Sprintf("%s%s?email=%s", em.Config.ResetURL, token, toEmail)

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"We received a request to reset the password for your %s account. Use the link below to choose a new password:\n\n"+
			"%s\n\n"+
			"The link is valid for 5 minutes. If you did not request a password reset, you can safely ignore this email.\n\n"+
			"Best regards,\nThe %s Team",
		em.Config.AppName, resetLink, em.Config.AppName)

	return em.send(toEmail, subject, body)
}
