package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/tree"
)

// FilterOptions selects and orders the listed tasks.
type FilterOptions struct {
	Status   string
	Priority string
	Sort     string
	Overdue  bool
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Status, "status", "s", "all",
		"One of all, active or completed.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "all",
		"One of all, low, medium, high or urgent.")
	cmd.Flags().StringVar(&o.Sort, "sort", "createdAt",
		"One of createdAt, dueDate, priority or completionDate.")
	cmd.Flags().BoolVar(&o.Overdue, "overdue", false,
		"Only overdue tasks. Overrides --status and --priority.")
}

// Options parses the flags into tree options.
func (o *FilterOptions) Options() (tree.Options, tree.SortOption, error) {
	opts := tree.DefaultOptions()
	var err error
	if opts.Status, err = tree.ParseStatus(o.Status); err != nil {
		return opts, "", err
	}
	if opts.Priority, err = tree.ParsePriorityFilter(o.Priority); err != nil {
		return opts, "", err
	}
	by, err := tree.ParseSortOption(o.Sort)
	if err != nil {
		return opts, "", err
	}
	opts.OverdueOnly = o.Overdue
	return opts, by, nil
}
