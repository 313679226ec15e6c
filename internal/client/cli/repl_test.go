package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) List(context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Show(_ context.Context, id string) error {
	f.calls = append(f.calls, "show "+id)
	return nil
}
func (f *fakeExec) Create(context.Context) error { f.calls = append(f.calls, "create"); return nil }
func (f *fakeExec) Edit(_ context.Context, id string) error {
	f.calls = append(f.calls, "edit "+id)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, id string, confirmed bool) error {
	f.calls = append(f.calls, "delete "+id)
	return nil
}
func (f *fakeExec) Stats(context.Context) error { f.calls = append(f.calls, "stats"); return nil }
func (f *fakeExec) ClearErrors()                { f.calls = append(f.calls, "clear") }

func TestRunREPL_Dispatch(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"",
		"l",
		"show 42",
		"edit 7",
		"delete",
		"9",
		"rm 10",
		"create",
		"stats",
		"clear",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "(0 entries)" }, rdr(input), &out)

	assert.Equal(t, []string{"list", "show 42", "edit 7", "delete 9", "delete 10", "create", "stats", "clear"}, exec.calls)
	assert.Contains(t, out.String(), "kb (0 entries)> ")
	assert.Contains(t, out.String(), "Available commands:")
	assert.Contains(t, out.String(), "Enter entry id")
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_EOFEnds(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list\n"), &out)
	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestRunREPL_EmptyIDPrintsUsage(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("show\n\nquit\n"), &out)
	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Usage: show <id>")
}

func TestRunREPL_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\n"), &bytes.Buffer{})
	assert.Empty(t, exec.calls)
}
