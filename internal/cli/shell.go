package cli

import (
	"context"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"

	"task-list/internal/errors"
	"task-list/internal/logging"
)

const (
	shellName   = "shell"
	shellPrompt = "todo> "
)

var shellCommandSpec = CommandSpec{
	Name:  shellName,
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Read commands line by line and run them against the same task list.
This is what runs when todo is started without a command.

Lines use the command syntax without the leading "todo", e.g.
  add "Buy milk" -d "Two litres" --tags shop
  list --sort title
Quote arguments containing spaces. Type help for the command list and exit or
quit to leave.`,
	Session: true,
	New:     func(app *App) Command { return NewShellCommand(app) },
}

// ShellCommand runs the interactive session
type ShellCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShellCommand creates a new shell command handler
func NewShellCommand(app *App) *ShellCommand {
	return &ShellCommand{app: app, errorHandler: app.errorHandler()}
}

// Execute reads lines until exit, quit or end of input
func (c *ShellCommand) Execute(ctx context.Context, args []string) error {
	c.app.println("Task list shell. Type help for commands, exit to quit.")
	for {
		c.app.printf("%s", shellPrompt)
		line, err := c.app.in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if quit := c.handleLine(ctx, line); quit {
				return nil
			}
		}
		if err == io.EOF {
			c.app.println()
			return nil
		}
		if err != nil {
			return c.errorHandler.Handle("read command", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// handleLine runs one line and reports whether the session should end
func (c *ShellCommand) handleLine(ctx context.Context, line string) bool {
	fields, err := splitCommandLine(line)
	if err != nil {
		c.app.printf("Error: %v\n", c.errorHandler.HandleSimple(err))
		return false
	}
	if len(fields) == 0 {
		return false
	}

	name := fields[0]
	switch name {
	case "exit", "quit":
		return true
	case "help":
		c.app.println(c.app.registry.GetUsage())
		return false
	case shellName:
		c.app.println("Already in the shell")
		return false
	}

	timeout := c.app.timeout()
	if spec, ok := c.app.registry.Lookup(name); ok && spec.Interactive {
		timeout *= 2
	}
	lineCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.Debugf("shell: running %q\n", fields)
	if err := c.app.Run(lineCtx, fields); err != nil {
		c.app.printf("Error: %v\n", c.errorHandler.HandleSimple(err))
	}
	return false
}

// splitCommandLine splits a line into arguments using /bin/sh word rules:
// single and double quotes group words and a backslash escapes the next
// character outside single quotes.
func splitCommandLine(line string) ([]string, error) {
	args, err := shellquote.Split(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return nil, errors.NewInvalidInputError("line", line, strings.ToLower(err.Error()))
	}
	return args, nil
}
