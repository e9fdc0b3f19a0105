package transfer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/task"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestExportImportJSON(t *testing.T) {
	seed := task.Seed(now)
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, seed, JSON))
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {\n    \"id\": \"1\""))

	got, err := Import(&buf, JSON)
	require.NoError(t, err)
	require.Len(t, got, len(seed))
	for i := range seed {
		assert.Equal(t, seed[i].ID, got[i].ID)
		assert.Equal(t, seed[i].Priority, got[i].Priority)
		assert.Equal(t, seed[i].Completed, got[i].Completed)
		assert.True(t, seed[i].CreatedAt.Equal(got[i].CreatedAt.Time))
	}
}

func TestExportImportYAML(t *testing.T) {
	seed := task.Seed(now)
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, seed, YAML))
	assert.Contains(t, buf.String(), "parentId: \"1\"")

	got, err := Import(&buf, YAML)
	require.NoError(t, err)
	require.Len(t, got, len(seed))
	assert.Equal(t, "1", got[3].ParentID)
	assert.True(t, got[4].DueDate.Equal(seed[4].DueDate.Time))
}

func TestImportRejects(t *testing.T) {
	cases := map[string]string{
		"missing title":  `[{"id":"x"}]`,
		"missing id":     `[{"title":"hello"}]`,
		"not an array":   `{"id":"x","title":"hello"}`,
		"non object":     `[{"id":"x","title":"hello"}, 3]`,
		"null":           `null`,
		"garbage":        `nope`,
		"bad date":       `[{"id":"x","title":"hello","dueDate":"tomorrow"}]`,
		"numeric id":     `[{"id":7,"title":"hello"}]`,
		"one bad of two": `[{"id":"a","title":"fine"},{"id":"b"}]`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Import(strings.NewReader(in), JSON)
			assert.ErrorIs(t, err, ErrInvalidImport)
			assert.Nil(t, got)
		})
	}
}

func TestImportAcceptsBrowserExport(t *testing.T) {
	in := `[{"id":"abc","title":"From the browser","priority":"someday","completed":false,
	  "createdAt":"2025-02-28T09:00:00.000Z","dueDate":"2025-03-02T15:00:00.000Z"}]`
	got, err := Import(strings.NewReader(in), JSON)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, task.Priority("someday"), got[0].Priority)
	assert.Equal(t, 15, got[0].DueDate.UTC().Hour())
}

func TestImportEmptyArray(t *testing.T) {
	got, err := Import(strings.NewReader(`[]`), JSON)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImportYAMLRejectsMissingTitle(t *testing.T) {
	_, err := Import(strings.NewReader("- id: x\n"), YAML)
	assert.ErrorIs(t, err, ErrInvalidImport)
}

func TestFormats(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	_, err = ParseFormat("csv")
	assert.Error(t, err)
	assert.Equal(t, YAML, FormatForPath("tasks.yaml"))
	assert.Equal(t, JSON, FormatForPath(DefaultFileName))
}
