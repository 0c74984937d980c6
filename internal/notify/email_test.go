package notify

import (
	"errors"
	"io"
	"net/smtp"
	"testing"
	"time"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSender() *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    "587",
		SenderEmail: "ingest@example.com",
		ReportEmail: "ops@example.com",
	}
	return NewSender(cfg, log)
}

func TestSendRunReport(t *testing.T) {
	s := testSender()
	var sent *email.Email
	var gotAddr string
	s.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		sent, gotAddr = e, addr
		return nil
	}

	summary := &models.RunSummary{
		RunID:      "run-1",
		StartedAt:  time.Date(2025, 11, 3, 3, 0, 0, 0, time.UTC),
		Duration:   90 * time.Second,
		Requests:   144,
		Records:    2310,
		Batches:    24,
		OutputPath: "/tmp/insert_trades.sql",
		ApplyError: "exit status 1",
	}
	require.NoError(t, s.SendRunReport(summary))

	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ops@example.com"}, sent.To)
	assert.Equal(t, "Trade price ingestion 2025-11-03: 2310 records", sent.Subject)
	assert.Contains(t, string(sent.Text), "Batches:  24")
	assert.Contains(t, string(sent.Text), "exit status 1")
}

func TestReportBody_Cancelled(t *testing.T) {
	body := reportBody(&models.RunSummary{RunID: "run-2", Records: 10, Cancelled: true})
	assert.Contains(t, body, "cancelled")
	assert.NotContains(t, body, "were applied")
}

func TestSendRunReport_Error(t *testing.T) {
	s := testSender()
	s.send = func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") }

	err := s.SendRunReport(&models.RunSummary{})
	assert.Error(t, err)
}
