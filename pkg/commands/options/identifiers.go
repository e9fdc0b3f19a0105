package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task.")
}

// TakeID is a cobra.PositionalArgs that reads the task id from args.
func (o *IDOptions) TakeID(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("requires a task id")
	}
	o.ID = strings.TrimSpace(args[0])
	if o.ID == "" {
		return errors.New("requires a task id")
	}
	return nil
}
