package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Dan9191/trade-prices/internal/export"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/Dan9191/trade-prices/internal/sqlwriter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrRunInProgress is returned when Run is called while another run is active
var ErrRunInProgress = errors.New("ingestion run already in progress")

// Collector produces the records for one run
type Collector interface {
	Run(ctx context.Context) []models.TransactionRecord
	Requests() int
}

// Reporter delivers a finished run's summary
type Reporter interface {
	SendRunReport(summary *models.RunSummary) error
}

// IngestOptions configures the optional steps after the SQL file is written
type IngestOptions struct {
	OutputPath string
	XLSXPath   string
	Executor   sqlwriter.Executor
	Reporter   Reporter
}

// Ingest runs the collect -> render -> apply pipeline
type Ingest struct {
	collector Collector
	writer    *sqlwriter.Writer
	opts      IngestOptions
	log       *logrus.Logger
	mu        sync.Mutex
	now       func() time.Time
}

// NewIngest initializes a new ingestion service
func NewIngest(collector Collector, writer *sqlwriter.Writer, opts IngestOptions, log *logrus.Logger) *Ingest {
	return &Ingest{
		collector: collector,
		writer:    writer,
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

// Run executes one full ingestion. A cancelled run still writes the records
// collected so far but does not apply them. Only a failure to write the SQL
// file is returned; applying, exporting and reporting failures are logged and
// recorded in the summary.
func (s *Ingest) Run(ctx context.Context) (*models.RunSummary, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()
	return s.run(ctx)
}

// RunAsync starts a run in the background. It returns ErrRunInProgress
// immediately when a run is already active.
func (s *Ingest) RunAsync(ctx context.Context) error {
	if !s.mu.TryLock() {
		return ErrRunInProgress
	}
	go func() {
		defer s.mu.Unlock()
		if _, err := s.run(ctx); err != nil {
			s.log.Errorf("Background ingestion failed: %v", err)
		}
	}()
	return nil
}

func (s *Ingest) run(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{
		RunID:      uuid.NewString(),
		StartedAt:  s.now(),
		Requests:   s.collector.Requests(),
		OutputPath: s.opts.OutputPath,
	}
	log := s.log.WithField("run_id", summary.RunID)
	log.Infof("Starting ingestion: %d requests", summary.Requests)

	records := s.collector.Run(ctx)
	summary.Cancelled = ctx.Err() != nil
	summary.Records = len(records)
	statements := s.writer.Statements(records)
	summary.Batches = len(statements)

	if err := s.writer.WriteFile(s.opts.OutputPath, records); err != nil {
		return summary, err
	}
	log.Infof("Wrote %d records in %d batches to %s", summary.Records, summary.Batches, s.opts.OutputPath)

	if s.opts.Executor != nil {
		if summary.Cancelled {
			log.Warn("Run cancelled, skipping database apply of the partial file")
		} else if len(statements) == 0 {
			log.Warn("No records collected, skipping database apply")
		} else if err := s.opts.Executor.Execute(ctx, s.opts.OutputPath, statements); err != nil {
			log.Errorf("Failed to apply SQL: %v", err)
			summary.ApplyError = err.Error()
		} else {
			summary.Applied = true
			log.Info("Applied SQL to database")
		}
	}

	if s.opts.XLSXPath != "" {
		if err := export.WriteXLSX(s.opts.XLSXPath, records); err != nil {
			log.Errorf("Failed to export workbook: %v", err)
		} else {
			log.Infof("Exported workbook to %s", s.opts.XLSXPath)
		}
	}

	summary.Duration = s.now().Sub(summary.StartedAt)

	if s.opts.Reporter != nil {
		if err := s.opts.Reporter.SendRunReport(summary); err != nil {
			log.Errorf("Failed to send run report: %v", err)
		}
	}

	log.Infof("Ingestion finished in %s", summary.Duration.Round(time.Millisecond))
	return summary, nil
}

