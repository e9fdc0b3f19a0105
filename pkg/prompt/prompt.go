// Package prompt asks for task fields on the terminal.
package prompt

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

const layoutDate = "2006-01-02"

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// Prompter reads a draft from In and echoes to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Draft walks through title, description, priority, due date and due time.
// Empty answers keep the defaults.
func (p *Prompter) Draft(defaults task.Draft) (task.Draft, error) {
	d := defaults

	title, err := p.ask("Title", d.Title, task.ValidateTitle)
	if err != nil {
		return d, err
	}
	d.Title = strings.TrimSpace(title)

	if d.Description, err = p.ask("Description", d.Description, nil); err != nil {
		return d, err
	}

	if d.Priority, err = p.priority(d.Priority); err != nil {
		return d, err
	}

	def := ""
	if !d.Due.IsZero() {
		def = d.Due.Format(layoutDate)
	}
	due, err := p.ask("Due date (YYYY-MM-DD, empty for none)", def, ValidateDate)
	if err != nil {
		return d, err
	}
	d.Due = time.Time{}
	if due != "" {
		d.Due, _ = time.ParseInLocation(layoutDate, due, time.Local)
		if d.DueTime, err = p.ask("Due time (HH:mm, empty for start of day)", d.DueTime, ValidateClock); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (p *Prompter) ask(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Templates: templates,
		Stdin:     ioutil.NopCloser(p.In),
		Stdout:    NopCloser(p.Out),
	}
	if validate != nil {
		prompt.Validate = func(in string) error {
			if in == "" && label != "Title" {
				return nil
			}
			return validate(in)
		}
	}
	return prompt.Run()
}

func (p *Prompter) priority(current task.Priority) (task.Priority, error) {
	items := task.Priorities()
	cursor := 1
	for i, v := range items {
		if v == current {
			cursor = i
		}
	}
	sel := promptui.Select{
		HideHelp:  true,
		Label:     "Priority",
		Items:     items,
		CursorPos: cursor,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ . | bold }}",
			Inactive: "   {{ . }}",
			Selected: "Priority: {{ . | bold }}",
		},
		Stdin:  ioutil.NopCloser(p.In),
		Stdout: NopCloser(p.Out),
	}
	i, _, err := sel.Run()
	if err != nil {
		return current, err
	}
	return items[i], nil
}

// ValidateDate accepts YYYY-MM-DD.
func ValidateDate(in string) error {
	if _, err := time.Parse(layoutDate, strings.TrimSpace(in)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	return nil
}

// ValidateClock accepts HH:mm.
func ValidateClock(in string) error {
	_, err := timeutil.CombineDateTime(time.Now(), strings.TrimSpace(in))
	return err
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
