package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/notify"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/runner/alert"
	"tableflip.dev/planner/pkg/timeutil"
)

func addNotify(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Manage due-task alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether alerts are on and the lead time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			s := e.scheduler()
			if output.JSON {
				return output.PrintJSON(map[string]interface{}{
					"enabled":    s.Enabled(),
					"permission": s.Permission(),
					"leadTimeMs": s.LeadTime().Milliseconds(),
				})
			}
			pp := printers.PrettyPrint{Out: os.Stdout}
			state := "off"
			if s.Enabled() {
				state = "on"
			}
			pp.Notice("Alerts: %s (permission %s)", state, s.Permission())
			pp.Notice("Lead time: %s", notify.LeadLabel(s.LeadTime()))
			return nil
		},
	}
	options.AddOutputArg(status, output)

	enable := &cobra.Command{
		Use:   "enable",
		Short: "Turn alerts on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setAlerts(cmd, true)
		},
	}
	disable := &cobra.Command{
		Use:   "disable",
		Short: "Turn alerts off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setAlerts(cmd, false)
		},
	}

	lead := &cobra.Command{
		Use:   "lead <duration>",
		Short: "Set how long before the due time an alert fires",
		Long: `Set the alert lead time. Accepted values are 0, 1m, 5m, 10m and 30m.
A bare number is read as minutes.`,
		Example: `
planner notify lead 5m
planner notify lead 0
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := timeutil.ParseLead(args[0])
			if err != nil {
				return err
			}
			if !notify.ValidLeadTime(d) {
				return notify.ErrInvalidLeadTime
			}
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.store.SetNotificationLeadTime(cmd.Context(), d); err != nil {
				return err
			}
			pp := printers.PrettyPrint{Out: os.Stdout}
			pp.Notice("Alert lead time: %s", notify.LeadLabel(d))
			return nil
		},
	}

	cmd.AddCommand(status, enable, disable, lead)
	topLevel.AddCommand(cmd)
}

func setAlerts(cmd *cobra.Command, on bool) error {
	cmd.SilenceUsage = true
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	if err := e.scheduler().SetEnabled(on); err != nil {
		return err
	}
	if err := e.store.SetNotificationsEnabled(cmd.Context(), on); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: os.Stdout}
	if on {
		pp.Notice("Alerts enabled.")
	} else {
		pp.Notice("Alerts disabled.")
	}
	return nil
}

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay in the foreground and alert when tasks come due",
		Example: `
planner notify enable
planner watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			if err := e.reloadOnChange(ctx); err != nil {
				return err
			}
			s := e.scheduler()
			pp := printers.PrettyPrint{Out: os.Stdout}
			pp.Notice("Watching for due tasks (%s). Press ctrl+c to stop.", notify.LeadLabel(s.LeadTime()))

			w := alert.Watch{
				Scheduler: s,
				Source:    e.svc,
				Sink:      &alert.Terminal{Out: os.Stdout, In: os.Stdin},
				Interval:  e.cfg.PollInterval(),
			}
			return w.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}

