package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/errors"
)

// deletePrompt is asked before anything is removed
const deletePrompt = "Are you sure, you want to delete this task?"

var deleteCommandSpec = CommandSpec{
	Name:  "delete",
	Use:   "delete <id|title> [--by-title] [--yes]",
	Short: "Delete a task",
	Long: `Delete a task after confirmation. This operation cannot be undone.

With --by-title every task carrying the title is deleted.

Examples:
  todo delete 3f2a
  todo delete --by-title "Buy milk" --yes`,
	MinArgs:     1,
	Interactive: true,
	New:         func(app *App) Command { return NewDeleteCommand(app) },
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
	byTitle      bool
	yes          bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: app.errorHandler()}
}

// BindFlags registers --by-title and --yes
func (c *DeleteCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.byTitle, "by-title", false, "Delete every task with this title")
	flags.BoolVarP(&c.yes, "yes", "y", false, "Do not ask for confirmation")
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: todo delete <id|title>")
	}
	return c.deleteTask(ctx, args)
}

// deleteTask implements the delete command
func (c *DeleteCommand) deleteTask(ctx context.Context, args []string) error {
	ref := taskRef(args, c.byTitle)

	// Show what is about to go; a title may match nothing, which is not an error
	task, err := c.app.api.GetTask(ctx, ref)
	if err != nil {
		if c.byTitle && c.errorHandler.IsNotFoundError(err) {
			c.app.printf("No tasks titled %q\n", ref.Value)
			return nil
		}
		return c.errorHandler.Handle("delete task", err)
	}

	if !c.yes {
		c.app.printf("Delete task %s\n", taskLabel(task))
		if !c.confirm() {
			c.app.println("Delete cancelled.")
			return nil
		}
	}

	deleted, err := c.app.api.DeleteTask(ctx, ref)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	c.app.printf("Deleted %d %s\n", deleted, plural(deleted, "task", "tasks"))
	return nil
}

// confirm asks the delete question and reads one answer line
func (c *DeleteCommand) confirm() bool {
	c.app.printf("%s [y/N]: ", deletePrompt)

	input, _ := c.app.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}
