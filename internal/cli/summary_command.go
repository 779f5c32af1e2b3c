package cli

import (
	"context"
)

var summaryCommandSpec = CommandSpec{
	Name:  "summary",
	Use:   "summary",
	Short: "Summarize the task list",
	Long: `Show how many tasks there are per status and tag, how many are past their
due date and which task is due next.`,
	New: func(app *App) Command { return NewSummaryCommand(app) },
}

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app, errorHandler: app.errorHandler()}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	summary, err := c.app.api.GetSummary(ctx)
	if err != nil {
		return c.errorHandler.Handle("summarize tasks", err)
	}
	c.app.renderer().Summary(summary)
	return nil
}
