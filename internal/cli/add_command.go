package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/api"
	"task-list/internal/errors"
)

var addCommandSpec = CommandSpec{
	Name:  "add",
	Use:   "add <title> [--description text] [--due date] [--tags a,b] [--status S]",
	Short: "Add a new task",
	Long: `Add a new task. The title is every positional argument joined by spaces.

Due dates accept "2006-01-02", "2006-01-02 15:04", the display format or RFC3339.
Status is one of OPEN, WORKING, DONE, OVERDUE (default OPEN).

Examples:
  todo add "Buy milk" -d "Two litres" --due 2024-06-01 --tags shop,home
  todo add Write report -d "Quarterly numbers" --status WORKING`,
	MinArgs: 1,
	New:     func(app *App) Command { return NewAddCommand(app) },
}

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	form         api.TaskForm
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: app.errorHandler(),
	}
}

// BindFlags registers the task field flags
func (c *AddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.form.Description, "description", "d", "", "Task description (required)")
	flags.StringVar(&c.form.DueDate, "due", "", "Due date")
	flags.StringVar(&c.form.Tags, "tags", "", "Comma-separated tags")
	flags.StringVar(&c.form.Status, "status", "", "Initial status")
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: todo add \"task title\" -d \"description\"")
	}
	c.form.Title = strings.Join(args, " ")
	return c.createTask(ctx)
}

// createTask creates a new task
func (c *AddCommand) createTask(ctx context.Context) error {
	task, err := c.app.api.CreateTask(ctx, c.form)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task %s: %s\n", task.ShortID(), task.Title)
	return nil
}
