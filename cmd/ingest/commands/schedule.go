package commands

import (
	"errors"

	"github.com/Dan9191/trade-prices/internal/scheduler"
	"github.com/Dan9191/trade-prices/internal/service"
	"github.com/spf13/cobra"
)

var cronFlag string

func init() {
	scheduleCmd.Flags().StringVar(&cronFlag, "cron", "", "Cron spec for runs, overrides INGEST_CRON.")
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--cron <spec>]",
	Short: "Runs ingestion on a cron schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := setup()
		if err != nil {
			return err
		}
		defer p.Close()
		svc, log := p.svc, p.log

		spec := cronFlag
		if spec == "" {
			spec = p.cfg.CronSpec
		}

		ctx := cmd.Context()
		s := scheduler.New(log)
		err = s.Add(spec, func() {
			if _, err := svc.Run(ctx); err != nil {
				if errors.Is(err, service.ErrRunInProgress) {
					log.Warn("Previous ingestion still running, skipping")
					return
				}
				log.Errorf("Scheduled ingestion failed: %v", err)
			}
		})
		if err != nil {
			return err
		}

		log.Infof("Ingestion scheduled with %q", spec)
		s.Run(ctx)
		log.Info("Scheduler stopped")
		return nil
	},
}
