package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--start YYYYMM] [--end YYYYMM] [--output <path/to/file.sql>]",
	Short: "Collects every region and month once and writes the SQL file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := setup()
		if err != nil {
			return err
		}
		defer p.Close()

		summary, err := p.svc.Run(cmd.Context())
		if err != nil {
			return err
		}
		p.log.Infof("Collected %d records from %d requests into %s", summary.Records, summary.Requests, summary.OutputPath)
		return nil
	},
}
