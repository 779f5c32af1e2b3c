package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/api"
	"task-list/internal/domain"
	"task-list/internal/errors"
)

const viewFlagsHelp = `
View options:
  --status S    keep tasks whose status starts with S (DONE, OPEN, W...)
  --sort F      timestamp (default), title or due_date
  --desc        reverse the order`

var listCommandSpec = CommandSpec{
	Name:  "list",
	Use:   "list [--status S] [--sort timestamp|title|due_date] [--desc]",
	Short: "List tasks",
	Long: `List tasks in the store. Titles sort by the configured locale; tasks
without a due date sort last.
` + viewFlagsHelp,
	New: func(app *App) Command { return NewListCommand(app) },
}

var searchCommandSpec = CommandSpec{
	Name:  "search",
	Use:   "search <text> [--status S] [--sort F] [--desc]",
	Short: "Search tasks by text",
	Long: `Show tasks where any field contains the text, ignoring case.

The store is left untouched unless search.destructive is configured, in which
case non-matching tasks are removed as with narrow.
` + viewFlagsHelp,
	MinArgs: 1,
	New:     func(app *App) Command { return NewSearchCommand(app) },
}

var narrowCommandSpec = CommandSpec{
	Name:  "narrow",
	Use:   "narrow <text>",
	Short: "Keep only tasks matching text",
	Long: `Remove every task that does not contain the text in any field, ignoring
case. This cannot be undone.`,
	MinArgs: 1,
	New:     func(app *App) Command { return NewNarrowCommand(app) },
}

var showCommandSpec = CommandSpec{
	Name:    "show",
	Use:     "show <id|title> [--by-title]",
	Short:   "Show one task",
	MinArgs: 1,
	New:     func(app *App) Command { return NewShowCommand(app) },
}

// ListCommand handles the list and search commands
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
	request      api.ListRequest
	search       bool
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: app.errorHandler()}
}

// NewSearchCommand creates a list command that filters by text
func NewSearchCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: app.errorHandler(), search: true}
}

// BindFlags registers the view flags
func (c *ListCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.request.Status, "status", "s", "", "Status prefix filter")
	flags.StringVar(&c.request.Sort, "sort", "", "Sort by timestamp, title or due_date")
	flags.BoolVar(&c.request.Descending, "desc", false, "Sort descending")
}

// Execute runs the command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if c.search {
		return c.searchTasks(ctx, args)
	}
	return c.listTasks(ctx)
}

// listTasks prints the whole collection through the view options
func (c *ListCommand) listTasks(ctx context.Context) error {
	tasks, err := c.app.api.ListTasks(ctx, c.request)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	c.app.renderer().Tasks(tasks)
	return nil
}

// searchTasks prints the tasks containing the joined arguments
func (c *ListCommand) searchTasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "search", "usage: todo search \"text\"")
	}
	tasks, err := c.app.api.SearchTasks(ctx, strings.Join(args, " "), c.request)
	if err != nil {
		return c.errorHandler.Handle("search tasks", err)
	}
	c.app.renderer().Tasks(tasks)
	return nil
}

// NarrowCommand handles the narrow command
type NarrowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewNarrowCommand creates a new narrow command handler
func NewNarrowCommand(app *App) *NarrowCommand {
	return &NarrowCommand{app: app, errorHandler: app.errorHandler()}
}

// Execute runs the narrow command
func (c *NarrowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "narrow", "usage: todo narrow \"text\"")
	}
	tasks, err := c.app.api.NarrowTasks(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("narrow tasks", err)
	}
	c.app.renderer().Tasks(tasks)
	return nil
}

// ShowCommand prints a single task
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
	byTitle      bool
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: app.errorHandler()}
}

// BindFlags registers --by-title
func (c *ShowCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.byTitle, "by-title", false, "Treat the reference as a title")
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.api.GetTask(ctx, taskRef(args, c.byTitle))
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}
	c.app.renderer().Task(task)
	return nil
}

// taskRef builds a reference from the positional arguments. Titles may span
// several arguments.
func taskRef(args []string, byTitle bool) api.TaskRef {
	if byTitle {
		return api.TaskRef{Value: strings.Join(args, " "), ByTitle: true}
	}
	if len(args) == 0 {
		return api.TaskRef{}
	}
	return api.TaskRef{Value: args[0]}
}

// taskLabel is the short form used in confirmations
func taskLabel(task *domain.Task) string {
	return task.ShortID() + ": " + task.Title
}
