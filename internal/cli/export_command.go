package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/api"
	"task-list/internal/export"
)

var exportCommandSpec = CommandSpec{
	Name:  "export",
	Use:   "export [--format csv|json|yaml|pdf] [--output file] [--status S] [--sort F] [--desc]",
	Short: "Export tasks",
	Long: `Export tasks in the specified format, to standard output or a file.

Supported formats:
  csv  - Comma-separated values (default)
  json - JSON array
  yaml - YAML sequence
  pdf  - Printable table, best written with --output

Examples:
  todo export > tasks.csv
  todo export --format json --sort title
  todo export --format pdf --output tasks.pdf`,
	New: func(app *App) Command { return NewExportCommand(app) },
}

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	format       string
	output       string
	request      api.ListRequest
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, errorHandler: app.errorHandler()}
}

// BindFlags registers the format, output and view flags
func (c *ExportCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.format, "format", "f", "", "Export format: "+strings.Join(export.Formats(), ", "))
	flags.StringVarP(&c.output, "output", "o", "", "Write to file instead of standard output")
	flags.StringVarP(&c.request.Status, "status", "s", "", "Status prefix filter")
	flags.StringVar(&c.request.Sort, "sort", "", "Sort by timestamp, title or due_date")
	flags.BoolVar(&c.request.Descending, "desc", false, "Sort descending")
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	// Legacy "format=csv" argument
	if len(args) > 0 && strings.HasPrefix(args[0], "format=") && c.format == "" {
		c.format = strings.TrimPrefix(args[0], "format=")
	}

	if c.output == "" {
		if err := c.app.api.ExportTasks(ctx, c.app.out, c.format, c.request); err != nil {
			return c.errorHandler.Handle("export tasks", err)
		}
		return nil
	}

	return c.exportToFile(ctx)
}

// exportToFile writes the export to c.output, removing the file on failure
func (c *ExportCommand) exportToFile(ctx context.Context) error {
	file, err := os.Create(c.output)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	if err := c.app.api.ExportTasks(ctx, file, c.format, c.request); err != nil {
		file.Close()
		os.Remove(c.output)
		return c.errorHandler.Handle("export tasks", err)
	}
	if err := file.Close(); err != nil {
		return c.errorHandler.Handle("export tasks", fmt.Errorf("closing %s: %w", c.output, err))
	}

	c.app.printf("Exported tasks to %s\n", c.output)
	return nil
}
