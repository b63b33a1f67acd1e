package mailing

import (
	"RecipeBook/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type smtpConfig struct {
	host     string
	port     int
	sender   string
	email    string
	password string
}

func loadSMTPConfig() (smtpConfig, error) {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return smtpConfig{}, err
	}
	return smtpConfig{
		host:     utils.GetConfig("SMTP_HOST"),
		port:     port,
		sender:   utils.GetConfig("SMTP_SENDER_NAME"),
		email:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		password: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}, nil
}

// SendMail delivers a single HTML message through the configured SMTP relay.
func SendMail(toEmail string, subject string, body string) error {
	cfg, err := loadSMTPConfig()
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", cfg.email, cfg.sender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(cfg.host, cfg.port, cfg.email, cfg.password)
	return dialer.DialAndSend(msg)
}
