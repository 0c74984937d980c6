package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendRunReport mails the outcome of an ingestion run to REPORT_EMAIL
func (s *Sender) SendRunReport(summary *models.RunSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.ReportEmail}
	e.Subject = fmt.Sprintf("Trade price ingestion %s: %d records", summary.StartedAt.Format("2006-01-02"), summary.Records)
	e.Text = []byte(reportBody(summary))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send run report to %s: %v", s.cfg.ReportEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.ReportEmail, e.Subject)
	return nil
}

func reportBody(summary *models.RunSummary) string {
	body := fmt.Sprintf(
		"Run %s started at %s and took %s.\n\n"+
			"Requests: %d\n"+
			"Records:  %d\n"+
			"Batches:  %d\n"+
			"SQL file: %s\n",
		summary.RunID, summary.StartedAt.Format("2006-01-02 15:04:05"), summary.Duration.Round(time.Second),
		summary.Requests, summary.Records, summary.Batches, summary.OutputPath,
	)
	switch {
	case summary.Cancelled:
		body += "\nThe run was cancelled; the SQL file is partial and was not applied.\n"
	case summary.ApplyError != "":
		body += fmt.Sprintf("\nApplying to the database failed: %s\n", summary.ApplyError)
	case summary.Applied:
		body += "\nBatches were applied to the database.\n"
	}
	return body
}
