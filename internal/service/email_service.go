package service

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

// EmailSender 邮件发送抽象, 测试时替换
type EmailSender interface {
	SendPasswordReset(toEmail, toName, resetToken string) error
}

type EmailService struct {
	config config.EmailConfig
}

func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{config: cfg}
}

func (s *EmailService) SendPasswordReset(toEmail, toName, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.FrontendURL, resetToken)

	from := mail.NewEmail("EduAssist", s.config.Sender)
	to := mail.NewEmail(toName, toEmail)
	subject := "Reset your EduAssist password"
	plain := fmt.Sprintf("Hi %s,\n\nUse the link below to reset your password. It expires in 1 hour.\n\n%s\n\nIf you didn't request this, ignore this email.", toName, resetURL)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Use the link below to reset your password. It expires in 1 hour.</p><p><a href="%s">Reset password</a></p><p>If you didn't request this, ignore this email.</p>`, toName, resetURL)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(s.config.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error (status %d): %s", resp.StatusCode, resp.Body)
	}

	logger.Log.Info("password reset email sent", zap.String("to", toEmail))
	return nil
}
