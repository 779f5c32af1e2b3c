package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"task-list/internal/config"
	"task-list/internal/domain"
	"task-list/internal/services"
)

var (
	mutedColor  = lipgloss.Color("#9CA3AF")
	borderColor = lipgloss.Color("#6B7280")

	// Status colours
	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusOpen:    lipgloss.Color("#60A5FA"), // Blue
		domain.StatusWorking: lipgloss.Color("#F59E0B"), // Amber
		domain.StatusDone:    lipgloss.Color("#10B981"), // Green
		domain.StatusOverdue: lipgloss.Color("#F87171"), // Red
	}

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// taskHeaders are the columns of the task table
var taskHeaders = []string{"ID", "Title", "Description", "Due", "Tags", "Status", "Created"}

// Renderer writes tasks and summaries for people
type Renderer struct {
	out      io.Writer
	layout   string
	relative bool
	color    bool
}

// NewRenderer creates a renderer using the display configuration
func NewRenderer(out io.Writer, display config.DisplayConfig) *Renderer {
	layout := display.TimeFormat
	if layout == "" {
		layout = domain.DisplayTimeLayout
	}
	return &Renderer{
		out:      out,
		layout:   layout,
		relative: display.RelativeTime,
		color:    display.Color,
	}
}

// Tasks prints tasks as a table, in the given order
func (r *Renderer) Tasks(tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "No tasks found")
		return
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			task.ShortID(),
			task.Title,
			task.Description,
			r.formatDue(task.DueDate),
			formatTags(task.Tags),
			r.status(task.Status),
			r.formatTime(task.Timestamp),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(taskHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if r.color {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(borderColor))
	}

	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintf(r.out, "%s\n", r.muted(fmt.Sprintf("%d %s", len(tasks), plural(len(tasks), "task", "tasks"))))
}

// Task prints every field of one task
func (r *Renderer) Task(task *domain.Task) {
	fmt.Fprintf(r.out, "ID:          %s\n", task.ID)
	fmt.Fprintf(r.out, "Title:       %s\n", task.Title)
	fmt.Fprintf(r.out, "Description: %s\n", task.Description)
	fmt.Fprintf(r.out, "Due:         %s\n", r.formatDue(task.DueDate))
	fmt.Fprintf(r.out, "Tags:        %s\n", formatTags(task.Tags))
	fmt.Fprintf(r.out, "Status:      %s\n", r.status(task.Status))
	fmt.Fprintf(r.out, "Created:     %s\n", r.formatTime(task.Timestamp))
}

// Summary prints the collection summary
func (r *Renderer) Summary(summary *services.Summary) {
	fmt.Fprintf(r.out, "Tasks: %s\n", humanize.Comma(int64(summary.Total)))
	if summary.Total == 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "By status:")
	for _, status := range domain.AllStatuses() {
		pad := strings.Repeat(" ", len("WORKING")-len(status))
		fmt.Fprintf(r.out, "  %s:%s %s\n", r.status(status), pad, humanize.Comma(int64(summary.ByStatus[status])))
	}

	if len(summary.ByTag) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "By tag:")
		for _, tc := range summary.ByTag {
			fmt.Fprintf(r.out, "  %s: %s\n", strings.ToUpper(tc.Tag), humanize.Comma(int64(tc.Count)))
		}
	}
	fmt.Fprintf(r.out, "  untagged: %s\n", humanize.Comma(int64(summary.Untagged)))

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Past due: %s\n", humanize.Comma(int64(summary.PastDue)))
	if summary.NextDue != nil {
		fmt.Fprintf(r.out, "Next due: %s (%s, %s)\n",
			summary.NextDue.Title,
			summary.NextDue.DueDate.Format(r.layout),
			humanize.RelTime(*summary.NextDue.DueDate, summary.GeneratedAt, "ago", "from now"))
	}
}

func (r *Renderer) status(status domain.Status) string {
	if !r.color {
		return string(status)
	}
	color, ok := statusColors[status]
	if !ok {
		return string(status)
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}

func (r *Renderer) muted(s string) string {
	if !r.color {
		return s
	}
	return lipgloss.NewStyle().Foreground(mutedColor).Render(s)
}

func (r *Renderer) formatTime(t time.Time) string {
	if r.relative {
		return humanize.Time(t)
	}
	return t.Format(r.layout)
}

func (r *Renderer) formatDue(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return r.formatTime(*due)
}

// formatTags renders tags upper-cased, comma separated
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	upper := make([]string, len(tags))
	for i, tag := range tags {
		upper[i] = strings.ToUpper(tag)
	}
	return strings.Join(upper, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
