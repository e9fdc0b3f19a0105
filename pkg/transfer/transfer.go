// Package transfer reads and writes task-list files.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/planner/pkg/task"
)

// DefaultFileName is used when exporting without an explicit target.
const DefaultFileName = "planner_tasks.json"

var ErrInvalidImport = errors.New("transfer: invalid task file")

// Format is a file encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("transfer: unsupported format %q (expected json or yaml)", s)
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return YAML
	}
	return JSON
}

// Export writes tasks as a pretty-printed array.
func Export(w io.Writer, tasks []task.Task, format Format) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("transfer: encode yaml: %w", err)
		}
		return enc.Close()
	default:
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("transfer: encode json: %w", err)
		}
		b = append(b, '\n')
		_, err = w.Write(b)
		return err
	}
}

// Import decodes a task file. The file is accepted only when it is an array
// whose every element is an object carrying an id and a title, and all of
// it decodes; otherwise nothing is returned.
func Import(r io.Reader, format Format) ([]task.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("transfer: read: %w", err)
	}
	if format == YAML {
		return importYAML(data)
	}
	return importJSON(data)
}

func importJSON(data []byte) ([]task.Task, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected an array of tasks: %v", ErrInvalidImport, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected an array of tasks", ErrInvalidImport)
	}
	for i, elem := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidImport, i)
		}
		if err := requireFields(i, fields["id"] != nil, fields["title"] != nil); err != nil {
			return nil, err
		}
	}
	var tasks []task.Task
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return tasks, nil
}

func importYAML(data []byte) ([]task.Task, error) {
	var raw []interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a list of tasks: %v", ErrInvalidImport, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a list of tasks", ErrInvalidImport)
	}
	for i, elem := range raw {
		fields, ok := elem.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not a mapping", ErrInvalidImport, i)
		}
		_, hasID := fields["id"]
		_, hasTitle := fields["title"]
		if err := requireFields(i, hasID, hasTitle); err != nil {
			return nil, err
		}
	}
	var tasks []task.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return tasks, nil
}

func requireFields(i int, hasID, hasTitle bool) error {
	switch {
	case !hasID:
		return fmt.Errorf("%w: element %d has no id", ErrInvalidImport, i)
	case !hasTitle:
		return fmt.Errorf("%w: element %d has no title", ErrInvalidImport, i)
	}
	return nil
}
