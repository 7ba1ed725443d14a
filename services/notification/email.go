package notification

import (
	"fixhub/config"
	"fixhub/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// GomailSender delivers messages over SMTP.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender builds a Sender from the SMTP configuration.
func NewGomailSender(cfg config.Config) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (s *GomailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// LogSender logs messages instead of delivering them. It backs development
// environments without SMTP credentials.
type LogSender struct{}

func (LogSender) Send(to, subject, body string) error {
	utils.GetLogger().Info("email (log only)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
