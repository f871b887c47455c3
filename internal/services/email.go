package services

import (
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"blog-platform/internal/config"
)

// EmailService отправляет письма сброса пароля через SMTP.
type EmailService struct {
	config *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{config: cfg}
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля.
// Сырой токен существует только в этом письме, ссылка действует 10 минут.
func (es *EmailService) SendPasswordReset(to, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", es.config.FrontendURL, resetToken)

	subject := "Password Reset Request"
	body := fmt.Sprintf(
		"You requested to reset your password.\r\n"+
			"This link expires in 10 minutes.\r\n\r\n%s\r\n",
		resetURL)

	return es.send(to, subject, body)
}

func (es *EmailService) send(to, subject, body string) error {
	if es.config.SMTPHost == "" || es.config.SMTPFrom == "" {
		// SMTP не настроен (development) — пишем письмо в лог
		log.Printf("SMTP не настроен, письмо для %s: %s", to, subject)
		return nil
	}

	addr := net.JoinHostPort(es.config.SMTPHost, strconv.Itoa(es.config.SMTPPort))

	headers := []string{
		"From: Blog Platform <" + es.config.SMTPFrom + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}

	var msg strings.Builder
	for _, h := range headers {
		msg.WriteString(h)
		msg.WriteString("\r\n")
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var smtpAuth smtp.Auth
	if es.config.SMTPUsername != "" {
		smtpAuth = smtp.PlainAuth("", es.config.SMTPUsername, es.config.SMTPPassword, es.config.SMTPHost)
	}

	return smtp.SendMail(addr, smtpAuth, es.config.SMTPFrom, []string{to}, []byte(msg.String()))
}
