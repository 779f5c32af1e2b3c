package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/logging"
)

// App represents the main CLI application
type App struct {
	api      api.BusinessAPI
	config   *config.Config
	registry *CommandRegistry
	logger   *logging.Logger
	in       *bufio.Reader
	out      io.Writer
}

// NewAppWithConfig creates a CLI application using the given configuration
func NewAppWithConfig(apiInstance api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:    apiInstance,
		config: cfg,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetIO replaces the input and output streams. The reader is shared by the
// interactive shell and confirmation prompts.
func (a *App) SetIO(in io.Reader, out io.Writer) {
	if in != nil {
		a.in = bufio.NewReader(in)
	}
	if out != nil {
		a.out = out
	}
}

// SetLogger sets where command failures worth keeping are logged
func (a *App) SetLogger(logger *logging.Logger) {
	a.logger = logger
}

// Registry returns the commands known to the application
func (a *App) Registry() *CommandRegistry {
	return a.registry
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

// timeout returns the configured application timeout
func (a *App) timeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

// Logger returns the logger set by SetLogger, or nil
func (a *App) Logger() *logging.Logger {
	return a.logger
}

// errorHandler logs through the logger the app holds when the error occurs
func (a *App) errorHandler() *ErrorHandler {
	return &ErrorHandler{logger: a.Logger}
}

func (a *App) renderer() *Renderer {
	return NewRenderer(a.out, a.config.Display)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
