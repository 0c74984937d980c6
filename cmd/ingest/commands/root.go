package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/Dan9191/trade-prices/internal/app"
	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/logging"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/Dan9191/trade-prices/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ingest",
	Short:         "ingest collects apartment trade records and renders them as SQL batches.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	startFlag  string
	endFlag    string
	outputFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&startFlag, "start", "", "First month to collect (YYYYMM), overrides INGEST_START.")
	rootCmd.PersistentFlags().StringVar(&endFlag, "end", "", "Last month to collect (YYYYMM), overrides INGEST_END.")
	rootCmd.PersistentFlags().StringVar(&outputFlag, "output", "", "Path of the generated SQL file, overrides SQL_OUTPUT.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type pipeline struct {
	cfg *config.Config
	svc *service.Ingest
	log *logrus.Logger
	db  *sql.DB
}

func (p *pipeline) Close() {
	if p.db != nil {
		p.db.Close()
	}
}

// setup loads configuration, applies flag overrides and builds the pipeline.
func setup() (*pipeline, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.RequireCredential(); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg); err != nil {
		return nil, err
	}

	p := &pipeline{cfg: cfg, log: logging.New(cfg.LogLevel)}
	if cfg.ApplyDirect {
		if p.db, err = app.OpenDB(cfg); err != nil {
			return nil, err
		}
	}
	if p.svc, err = app.NewIngest(cfg, p.db, p.log); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func applyFlags(cfg *config.Config) error {
	if startFlag != "" {
		ym, err := models.ParseYearMonth(startFlag)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		cfg.Start = ym
	}
	if endFlag != "" {
		ym, err := models.ParseYearMonth(endFlag)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		cfg.End = ym
	}
	if outputFlag != "" {
		cfg.SQLOutput = outputFlag
	}
	return nil
}
