package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/planner/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
planner ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			events, err := e.store.Watch(ctx)
			if err != nil {
				return err
			}
			return teaui.Run(teaui.Config{
				Service:   e.svc,
				Scheduler: e.scheduler(),
				Settings:  e.store,
				Events:    events,
				Interval:  e.cfg.PollInterval(),
			})
		},
	}

	topLevel.AddCommand(cmd)
}
