package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Example: `
planner stats
planner stats --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			st := e.svc.Stats()
			if output.JSON {
				return output.PrintJSON(st)
			}
			pp := printers.PrettyPrint{Out: os.Stdout}
			pp.Stats(st)
			return nil
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed tasks",
		Long: `Report lists tasks completed within the specified time window.

Examples:
  planner report
  planner report --last 3d
  planner report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			duration, label, err := timeutil.ParseWindow(last)
			if err != nil {
				return err
			}
			until := time.Now()
			since := until.Add(-duration)

			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			result := e.svc.CompletedReport(since, until)
			if output.JSON {
				return output.PrintJSON(result)
			}
			pp := printers.PrettyPrint{Out: os.Stdout}
			pp.Report(result, label)
			return nil
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
