package commands

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/prompt"
	"tableflip.dev/planner/pkg/task"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `
planner add Finish the quarterly report --due 2025-3-5 --at 15:00 --priority high
planner add Book flights --parent 1
planner add --interactive
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			e, err := loadEnv(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			d, err := to.Draft(strings.Join(args, " "), time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			if i.Interactive {
				p := &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				if d, err = p.Draft(d); err != nil {
					return output.HandleError(err)
				}
			}

			var created task.Task
			if d.ParentID != "" {
				subs, err := e.svc.AddSubTasks(ctx, d.ParentID, []task.Draft{d})
				if err != nil {
					return output.HandleError(err)
				}
				created = subs[0]
			} else if created, err = e.svc.Add(ctx, d); err != nil {
				return output.HandleError(err)
			}
			return printTask(created, "Task Added!")
		},
	}

	options.AddTaskArgs(cmd, to)
	options.AddParentArg(cmd, to)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addSub(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "sub <parent id> <title>...",
		Short: "Add one or more sub-tasks",
		Long: `Add sub-tasks under an existing task. Each remaining argument is one
sub-task title; all sub-tasks share the --due, --at and --priority flags.`,
		Example: `
planner sub 1 "Draft agenda" "Book the room"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a parent id and at least one title")
			}
			return io.TakeID(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			e, err := loadEnv(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			drafts := make([]task.Draft, 0, len(args)-1)
			for _, title := range args[1:] {
				d, err := to.Draft(title, time.Now())
				if err != nil {
					return output.HandleError(err)
				}
				drafts = append(drafts, d)
			}
			created, err := e.svc.AddSubTasks(ctx, io.ID, drafts)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.PrintJSON(created)
			}
			pp := printers.PrettyPrint{}
			pp.Notice("Added %d sub-task(s).", len(created))
			return nil
		},
	}

	options.AddTaskArgs(cmd, to)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	var title string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Example: `
planner edit 1 --title "Finalize Q4 strategy" --priority urgent
planner edit 1 --no-due
`,
		Args: io.TakeID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			e, err := loadEnv(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			p, err := to.Patch(cmd, title, clearDue, time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			updated, err := e.svc.Update(ctx, io.ID, p)
			if err != nil {
				return output.HandleError(err)
			}
			return printTask(updated, "Task Updated!")
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title.")
	cmd.Flags().BoolVar(&clearDue, "no-due", false, "Remove the due date.")
	options.AddTaskArgs(cmd, to)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addDone(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete", "toggle"},
		Short:   "Toggle a task between completed and active",
		Example: `
planner done 5
`,
		Args: io.TakeID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			e, err := loadEnv(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			t, err := e.svc.Toggle(ctx, io.ID)
			if err != nil {
				return output.HandleError(err)
			}
			if t.Completed {
				return printTask(t, "Task Completed!")
			}
			return printTask(t, "Task Reopened!")
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task and its direct sub-tasks",
		Example: `
planner rm 1
`,
		Args: io.TakeID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			e, err := loadEnv(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			removed, err := e.svc.Delete(ctx, io.ID)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return output.PrintJSON(removed)
			}
			pp := printers.PrettyPrint{}
			pp.Notice("Task Deleted! %d task(s) removed.", len(removed))
			return nil
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func printTask(t task.Task, heading string) error {
	if output.JSON {
		return output.PrintJSON(t)
	}
	pp := printers.PrettyPrint{Out: os.Stdout}
	pp.Notice("%s %q", heading, t.Title)
	pp.Task(t)
	return nil
}
