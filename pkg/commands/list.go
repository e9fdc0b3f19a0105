package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/tree"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks as a tree",
		Example: `
planner list
planner list --status active --sort dueDate
planner list --overdue --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			opts, by, err := fo.Options()
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			nodes := e.svc.View(opts, by)
			if output.JSON {
				return output.PrintJSON(nodes)
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID, Out: os.Stdout}
			if n := len(e.svc.Overdue()); n > 0 && !opts.OverdueOnly {
				pp.Warning("You have %d overdue task(s).", n)
			}
			pp.TitleWithCount(fmt.Sprintf("Tasks by %s", by.Label()), tree.Count(nodes))
			pp.Tree(nodes)
			return nil
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its sub-tasks",
		Example: `
planner show 1
`,
		Args: io.TakeID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			t, err := e.svc.Get(io.ID)
			if err != nil {
				return output.HandleError(err)
			}
			subs := tree.ChildrenOf(e.svc.Tasks(), t.ID)
			if output.JSON {
				return output.PrintJSON(struct {
					Task     interface{} `json:"task"`
					SubTasks interface{} `json:"subTasks"`
				}{t, subs})
			}
			out, err := printers.RenderMarkdown(printers.Markdown(t, subs), 80)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
