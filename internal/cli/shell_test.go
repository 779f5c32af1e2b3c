package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-list/internal/errors"
)

func TestShellCommand_RunsLinesAgainstSameStore(t *testing.T) {
	input := strings.Join([]string{
		`add "Buy milk" -d "Two litres" --tags shop`,
		`add Report -d 'Quarterly numbers'`,
		`list --sort title`,
		`exit`,
		`add "Never run" -d ignored`,
	}, "\n") + "\n"
	app, out := setupTestAppWithInput(t, input)

	require.NoError(t, run(t, app, "shell"))

	assert.Equal(t, []string{"Buy milk", "Report"}, listTitles(t, app))
	output := out.String()
	assert.Contains(t, output, shellPrompt)
	assert.Contains(t, output, "Added task")
	pos := order(t, output, "Two litres", "Quarterly numbers")
	assert.Less(t, pos[0], pos[1])
}

func TestShellCommand_ErrorsDoNotEndSession(t *testing.T) {
	input := "frobnicate\nadd NoDescription\nadd \"open quote\nadd Fine -d ok\nquit\n"
	app, out := setupTestAppWithInput(t, input)

	require.NoError(t, run(t, app, "shell"))

	output := out.String()
	assert.Contains(t, output, "Error: invalid input for command: unknown command")
	assert.Contains(t, output, "Error: failed to add task: description is required")
	assert.Contains(t, output, "Error: invalid input for line:")
	assert.Equal(t, []string{"Fine"}, listTitles(t, app))
}

func TestShellCommand_EndOfInput(t *testing.T) {
	app, out := setupTestAppWithInput(t, "add Last -d line")

	require.NoError(t, run(t, app, "shell"))

	assert.Equal(t, []string{"Last"}, listTitles(t, app))
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestShellCommand_DeleteConfirmationReadsNextLine(t *testing.T) {
	input := "add Drop -d goes\ndelete --by-title Drop\ny\nlist\nexit\n"
	app, out := setupTestAppWithInput(t, input)

	require.NoError(t, run(t, app, "shell"))

	assert.Contains(t, out.String(), deletePrompt)
	assert.Contains(t, out.String(), "Deleted 1 task")
	assert.Contains(t, out.String(), "No tasks found")
	assert.Empty(t, listTitles(t, app))
}

func TestShellCommand_HelpAndNesting(t *testing.T) {
	app, out := setupTestAppWithInput(t, "help\nshell\n\n   \nexit\n")

	require.NoError(t, run(t, app, "shell"))

	assert.Contains(t, out.String(), "todo add <title>")
	assert.Contains(t, out.String(), "Already in the shell")
}

func TestShellCommand_StopsWhenContextDone(t *testing.T) {
	app, _ := setupTestAppWithInput(t, "add One -d first\nadd Two -d second\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewShellCommand(app).Execute(ctx, nil))
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "plain words", line: "list --sort title\n", want: []string{"list", "--sort", "title"}},
		{name: "double quotes", line: `add "Buy milk" -d "Two litres"`, want: []string{"add", "Buy milk", "-d", "Two litres"}},
		{name: "single quotes keep backslash", line: `add 'a\b'`, want: []string{"add", `a\b`}},
		{name: "escaped space", line: `add Buy\ milk`, want: []string{"add", "Buy milk"}},
		{name: "escaped quote", line: `add "say \"hi\""`, want: []string{"add", `say "hi"`}},
		{name: "empty quoted argument", line: `edit abcd --due ""`, want: []string{"edit", "abcd", "--due", ""}},
		{name: "adjacent quotes join", line: `add foo"bar"'baz'`, want: []string{"add", "foobarbaz"}},
		{name: "tabs and extra spaces", line: "  list\t\t--desc  ", want: []string{"list", "--desc"}},
		{name: "hash is not a comment", line: "add Plan --tags #urgent", want: []string{"add", "Plan", "--tags", "#urgent"}},
		{name: "windows line ending", line: "list --desc\r\n", want: []string{"list", "--desc"}},
		{name: "blank", line: "   \n", want: nil},
		{name: "unterminated quote", line: `add "Buy milk`, wantErr: true},
		{name: "trailing backslash", line: `add milk\`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitCommandLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
				return
			}
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
