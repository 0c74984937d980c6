// Package app assembles components from configuration for the binaries.
package app

import (
	"database/sql"
	"fmt"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/ingest"
	"github.com/Dan9191/trade-prices/internal/integrations/molit"
	"github.com/Dan9191/trade-prices/internal/notify"
	"github.com/Dan9191/trade-prices/internal/service"
	"github.com/Dan9191/trade-prices/internal/sqlwriter"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// OpenDB opens and pings the configured database
func OpenDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewIngest builds the ingestion pipeline. db may be nil unless direct
// apply is configured.
func NewIngest(cfg *config.Config, db *sql.DB, log *logrus.Logger) (*service.Ingest, error) {
	client, err := molit.NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	months := ingest.Months(cfg.Start, cfg.End)
	if len(months) == 0 {
		return nil, fmt.Errorf("empty ingestion window %s..%s", cfg.Start, cfg.End)
	}
	driver := ingest.NewDriver(client, ingest.DefaultRegions, months, cfg.Delay, log)
	writer := sqlwriter.NewWriter(sqlwriter.DefaultTable, cfg.BatchSize)

	opts := service.IngestOptions{
		OutputPath: cfg.SQLOutput,
		XLSXPath:   cfg.XLSXOutput,
	}
	switch {
	case cfg.ApplyDirect:
		if cfg.DBDriver != "sqlite" {
			return nil, fmt.Errorf("APPLY_DIRECT requires DB_DRIVER=sqlite, got %s", cfg.DBDriver)
		}
		if db == nil {
			return nil, fmt.Errorf("APPLY_DIRECT requires an open database")
		}
		opts.Executor = sqlwriter.NewDBExecutor(db, log)
	case cfg.DBTool != "":
		executor, err := sqlwriter.NewCommandExecutor(cfg.DBTool, cfg.DBName)
		if err != nil {
			return nil, err
		}
		opts.Executor = executor
	}
	if cfg.MailEnabled() {
		opts.Reporter = notify.NewSender(cfg, log)
	}

	log.Infof("Ingestion window %s..%s, %d regions, %s payloads", cfg.Start, cfg.End, len(ingest.DefaultRegions), cfg.APIFormat)
	return service.NewIngest(driver, writer, opts, log), nil
}
