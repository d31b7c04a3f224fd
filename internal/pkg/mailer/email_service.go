// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationAlert(toEmail, sessionID, query, category string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendEscalationAlert(toEmail, sessionID, query, category string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Escalated customer query needs attention")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A customer query could not be answered automatically</h2>
			<p><strong>Session:</strong> %s</p>
			<p><strong>Category:</strong> %s</p>
			<p><strong>Query:</strong></p>
			<blockquote style="border-left: 3px solid #007BFF; padding-left: 10px;">%s</blockquote>
			<p>Please follow up with the customer during support hours.</p>
		</div>
	`, sessionID, category, query)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation alert sent to %s\n", toEmail)
	return nil
}
