package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/transfer"
)

func addExport(topLevel *cobra.Command) {
	var (
		format string
		target string
		clip   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every task to a file",
		Example: `
planner export
planner export --output tasks.yaml
planner export --format json --output - | jq .
planner export --clipboard
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			f := transfer.FormatForPath(target)
			if cmd.Flags().Changed("format") {
				var err error
				if f, err = transfer.ParseFormat(format); err != nil {
					return err
				}
			}
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := transfer.Export(&buf, e.svc.Tasks(), f); err != nil {
				return err
			}

			pp := printers.PrettyPrint{Out: os.Stderr}
			switch {
			case clip:
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				pp.Notice("Copied %d task(s) to the clipboard.", len(e.svc.Tasks()))
			case target == "-":
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			default:
				if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
					return err
				}
				pp.Notice("Exported %d task(s) to %s.", len(e.svc.Tasks()), target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "One of json or yaml. Defaults to the --output extension.")
	cmd.Flags().StringVarP(&target, "output", "o", transfer.DefaultFileName, `File to write, or "-" for stdout.`)
	cmd.Flags().BoolVar(&clip, "clipboard", false, "Copy to the clipboard instead of writing a file.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every task with the contents of a file",
		Long: `Import reads a JSON or YAML array of tasks and replaces the whole
collection with it. Nothing is changed when the file is invalid.`,
		Example: `
planner import planner_tasks.json
cat tasks.yaml | planner import - --format yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path := args[0]
			f := transfer.FormatForPath(path)
			if cmd.Flags().Changed("format") {
				var err error
				if f, err = transfer.ParseFormat(format); err != nil {
					return err
				}
			}

			in := cmd.InOrStdin()
			if path != "-" {
				file, err := os.Open(path)
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}
			tasks, err := transfer.Import(in, f)
			if err != nil {
				return err
			}

			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.svc.Replace(cmd.Context(), tasks); err != nil {
				return err
			}
			pp := printers.PrettyPrint{Out: os.Stdout}
			pp.Notice("Imported %d task(s).", len(tasks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "One of json or yaml. Defaults to the file extension.")
	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var dir string

	cmd := &cobra.Command{
		Use:   "ics <id>",
		Short: "Save a task as an iCalendar event",
		Example: `
planner ics 1
planner ics 1 --dir ~/Downloads
`,
		Args: io.TakeID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			t, err := e.svc.Get(io.ID)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := calendar.Write(&buf, t, time.Now()); err != nil {
				if errors.Is(err, calendar.ErrNoDueDate) {
					return fmt.Errorf("cannot create a calendar event for %q: it has no due date", t.Title)
				}
				return err
			}
			path := filepath.Join(dir, calendar.FileName(t))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			pp := printers.PrettyPrint{Out: os.Stdout}
			pp.Notice("Calendar event saved to %s.", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the .ics file to.")
	topLevel.AddCommand(cmd)
}
