package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestToggleRoundTrip(t *testing.T) {
	list := Seed(testNow)

	once, toggled, err := Toggle(list, "1", testNow)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	require.True(t, toggled.CompletionDate.Set())
	assert.True(t, toggled.CompletionDate.Equal(testNow))

	twice, back, err := Toggle(once, "1", testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, back.Completed)
	assert.Nil(t, back.CompletionDate)

	orig, _ := Find(list, "1")
	restored, _ := Find(twice, "1")
	assert.Equal(t, orig, restored)
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	list := Seed(testNow)
	_, _, err := Toggle(list, "2", testNow)
	require.NoError(t, err)
	orig, _ := Find(list, "2")
	assert.False(t, orig.Completed)
}

func TestToggleUnknown(t *testing.T) {
	_, _, err := Toggle(Seed(testNow), "nope", testNow)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteCascadesOneLevel(t *testing.T) {
	list := []Task{
		{ID: "a", Title: "root"},
		{ID: "b", Title: "child", ParentID: "a"},
		{ID: "c", Title: "grandchild", ParentID: "b"},
		{ID: "d", Title: "other"},
	}
	out, removed, err := Delete(list, "a")
	require.NoError(t, err)
	require.Len(t, removed, 2)
	assert.Equal(t, "a", removed[0].ID)
	assert.Equal(t, "b", removed[1].ID)

	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].ID)
	assert.Equal(t, "b", out[0].ParentID, "grandchild keeps its dangling parent")
	assert.Equal(t, "d", out[1].ID)
	assert.Len(t, list, 4)
}

func TestDeleteUnknown(t *testing.T) {
	list := Seed(testNow)
	out, removed, err := Delete(list, "zzz")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Nil(t, removed)
	assert.Len(t, out, len(list))
}

func TestUpdateValidatesTitle(t *testing.T) {
	list := Seed(testNow)
	short := "ab"
	_, _, err := Update(list, "1", Patch{Title: &short})
	assert.ErrorIs(t, err, ErrTitleTooShort)

	title := "  A better title  "
	p := Urgent
	out, updated, err := Update(list, "1", Patch{Title: &title, Priority: &p})
	require.NoError(t, err)
	assert.Equal(t, "A better title", updated.Title)
	assert.Equal(t, Urgent, updated.Priority)
	got, _ := Find(out, "1")
	assert.Equal(t, updated, got)
}

func TestUpdateDueTime(t *testing.T) {
	list := []Task{{ID: "x", Title: "meeting", DueDate: At(testNow)}}

	hhmm := "09:30"
	_, updated, err := Update(list, "x", Patch{DueTime: &hhmm})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.DueDate.Hour())
	assert.Equal(t, 30, updated.DueDate.Minute())
	assert.Equal(t, testNow.Day(), updated.DueDate.Day())

	bad := "25:99"
	_, updated, err = Update(list, "x", Patch{DueTime: &bad})
	require.NoError(t, err)
	assert.True(t, updated.DueDate.Equal(testNow), "invalid time keeps the previous date")

	_, updated, err = Update(list, "x", Patch{ClearDue: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestAppendCopies(t *testing.T) {
	list := make([]Task, 1, 4)
	list[0] = Task{ID: "a", Title: "first"}
	out := Append(list, Task{ID: "b", Title: "second"})
	require.Len(t, out, 2)
	out[0].Title = "changed"
	assert.Equal(t, "first", list[0].Title)
}
