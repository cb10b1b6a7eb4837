package services

import (
	"fmt"
	"math/rand"
	"net/smtp"
	"os"
)

// EmailService отправляет служебные письма через SMTP
type EmailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// GenerateVerificationCode возвращает 6-значный код подтверждения
func GenerateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// SendPasswordResetEmail отправляет письмо с кодом восстановления пароля
func (s *EmailService) SendPasswordResetEmail(email, code string) error {
	subject := "SafeKids: восстановление пароля"
	body := fmt.Sprintf(
		"Здравствуйте!\r\n\r\n"+
			"Ваш код для восстановления пароля: %s\r\n"+
			"Код действует 24 часа.\r\n\r\n"+
			"Если вы не запрашивали восстановление, проигнорируйте это письмо.\r\n\r\n"+
			"Команда SafeKids",
		code,
	)

	msg := []byte(
		"From: " + s.From + "\r\n" +
			"To: " + email + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
			"\r\n" +
			body,
	)

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := s.Host + ":" + s.Port

	return smtp.SendMail(addr, auth, s.From, []string{email}, msg)
}
