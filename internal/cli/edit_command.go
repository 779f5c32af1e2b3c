package cli

import (
	"context"

	"github.com/spf13/pflag"

	"task-list/internal/api"
	"task-list/internal/domain"
	"task-list/internal/errors"
)

var editCommandSpec = CommandSpec{
	Name:  "edit",
	Use:   "edit <id|title> [--title T] [--description D] [--due date] [--tags a,b] [--status S] [--by-title]",
	Short: "Edit a task",
	Long: `Edit a task. Fields without a flag keep their current value; --due ""
clears the due date and --tags replaces the tag list.

A task is referenced by its ID or an ID prefix of at least 4 characters. With
--by-title the reference is a title and only the first task with that title
changes; nothing happens when no task has it.

Examples:
  todo edit 3f2a --status DONE
  todo edit --by-title "Buy milk" --due 2024-06-02`,
	MinArgs: 1,
	New:     func(app *App) Command { return NewEditCommand(app) },
}

var tagCommandSpec = CommandSpec{
	Name:    "tag",
	Use:     "tag <id|title> <tag>... [--by-title]",
	Short:   "Add tags to a task",
	MinArgs: 2,
	New:     func(app *App) Command { return NewTagCommand(app, false) },
}

var untagCommandSpec = CommandSpec{
	Name:    "untag",
	Use:     "untag <id|title> <tag>... [--by-title]",
	Short:   "Remove tags from a task",
	MinArgs: 2,
	New:     func(app *App) Command { return NewTagCommand(app, true) },
}

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
	flags        *pflag.FlagSet
	byTitle      bool

	title       string
	description string
	dueDate     string
	tags        string
	status      string
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: app.errorHandler()}
}

// BindFlags registers one flag per editable field
func (c *EditCommand) BindFlags(flags *pflag.FlagSet) {
	c.flags = flags
	flags.StringVar(&c.title, "title", "", "New title")
	flags.StringVarP(&c.description, "description", "d", "", "New description")
	flags.StringVar(&c.dueDate, "due", "", "New due date, empty to clear")
	flags.StringVar(&c.tags, "tags", "", "Replacement comma-separated tags")
	flags.StringVar(&c.status, "status", "", "New status")
	flags.BoolVar(&c.byTitle, "by-title", false, "Treat the reference as a title")
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: todo edit <id|title> --field value")
	}
	ref := taskRef(args, c.byTitle)

	task, err := c.app.api.EditTask(ctx, ref, c.form())
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}
	if task == nil {
		c.app.printf("No task titled %q, nothing changed\n", ref.Value)
		return nil
	}

	c.app.printf("Updated task %s\n", taskLabel(task))
	return nil
}

// form returns the fields whose flags were given
func (c *EditCommand) form() api.EditForm {
	var form api.EditForm
	if c.flags == nil {
		return form
	}
	if c.flags.Changed("title") {
		form.Title = &c.title
	}
	if c.flags.Changed("description") {
		form.Description = &c.description
	}
	if c.flags.Changed("due") {
		form.DueDate = &c.dueDate
	}
	if c.flags.Changed("tags") {
		form.Tags = &c.tags
	}
	if c.flags.Changed("status") {
		form.Status = &c.status
	}
	return form
}

// TagCommand handles the tag and untag commands
type TagCommand struct {
	app          *App
	errorHandler *ErrorHandler
	remove       bool
	byTitle      bool
}

// NewTagCommand creates a tag handler; remove selects untag
func NewTagCommand(app *App, remove bool) *TagCommand {
	return &TagCommand{app: app, errorHandler: app.errorHandler(), remove: remove}
}

// BindFlags registers --by-title
func (c *TagCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.byTitle, "by-title", false, "Treat the reference as a title")
}

// Execute runs the command. The first argument is the task, the rest are tags.
func (c *TagCommand) Execute(ctx context.Context, args []string) error {
	operation := "tag task"
	if c.remove {
		operation = "untag task"
	}
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", operation, "usage: todo tag <id|title> <tag>...")
	}
	ref := api.TaskRef{Value: args[0], ByTitle: c.byTitle}

	var task *domain.Task
	var err error
	if c.remove {
		task, err = c.app.api.UntagTask(ctx, ref, args[1:]...)
	} else {
		task, err = c.app.api.TagTask(ctx, ref, args[1:]...)
	}
	if err != nil {
		return c.errorHandler.Handle(operation, err)
	}
	if task == nil {
		c.app.printf("No task titled %q, nothing changed\n", ref.Value)
		return nil
	}

	c.app.printf("Tags of %s: %s\n", taskLabel(task), formatTags(task.Tags))
	return nil
}
