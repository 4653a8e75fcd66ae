package mailer

import (
	"fmt"
	"strings"

	"chargeflow-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBatchReport(toEmail string, report *entity.BatchReport) error
	SendPaymentConfirmation(toEmail, clientName string, amount float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendBatchReport(toEmail string, report *entity.BatchReport) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Batch report: %s", report.Job))

	var errs string
	if len(report.Errors) > 0 {
		errs = fmt.Sprintf(`<h3>Errors</h3><pre style="color: #C0392B;">%s</pre>`,
			strings.Join(report.Errors, "\n"))
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Batch run: %s</h2>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px;">Checked</td><td>%d</td></tr>
				<tr><td style="padding: 4px 12px;">Approved</td><td>%d</td></tr>
				<tr><td style="padding: 4px 12px;">Expired</td><td>%d</td></tr>
				<tr><td style="padding: 4px 12px;">Sent</td><td>%d</td></tr>
				<tr><td style="padding: 4px 12px;">Failed</td><td>%d</td></tr>
				<tr><td style="padding: 4px 12px;">Updated</td><td>%d</td></tr>
			</table>
			%s
			<p>Started %s, finished %s.</p>
		</div>
	`, report.Job, report.Checked, report.Approved, report.Expired,
		report.Sent, report.Failed, report.Updated, errs,
		report.StartedAt.Format("2006-01-02 15:04:05"),
		report.FinishedAt.Format("2006-01-02 15:04:05"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send batch report to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendPaymentConfirmation(toEmail, clientName string, amount float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Payment received")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment confirmed</h2>
			<p>We received the payment of <strong>%.2f</strong> from %s.</p>
			<p>The subscription has been renewed.</p>
		</div>
	`, amount, clientName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send payment confirmation to %s: %w", toEmail, err)
	}
	return nil
}
