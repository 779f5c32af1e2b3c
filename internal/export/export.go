// Package export renders a list of tasks as csv, json, yaml or pdf.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"task-list/internal/domain"
	"task-list/internal/errors"
)

// Supported formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPDF  = "pdf"
)

// Formats lists the supported formats
func Formats() []string {
	return []string{FormatCSV, FormatJSON, FormatYAML, FormatPDF}
}

// CSVHeader is the first row of every csv export
var CSVHeader = []string{"ID", "Timestamp", "Title", "Description", "Due Date", "Tags", "Status"}

// Record is the serialized shape of a task
type Record struct {
	ID          string   `json:"id" yaml:"id"`
	Timestamp   string   `json:"timestamp" yaml:"timestamp"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	DueDate     string   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Tags        []string `json:"tags" yaml:"tags"`
	Status      string   `json:"status" yaml:"status"`
}

// Exporter writes tasks in one of the supported formats
type Exporter struct {
	timeLayout string
}

// NewExporter creates an Exporter formatting dates with timeLayout
func NewExporter(timeLayout string) *Exporter {
	if timeLayout == "" {
		timeLayout = domain.DisplayTimeLayout
	}
	return &Exporter{timeLayout: timeLayout}
}

// NormalizeFormat lower-cases format and checks it is supported. "yml" is
// accepted as yaml.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "yml" {
		f = FormatYAML
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewInvalidInputError("format", format, "must be one of "+strings.Join(Formats(), ", "))
}

// Records converts tasks to their serialized shape
func (e *Exporter) Records(tasks []*domain.Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, task := range tasks {
		rec := Record{
			ID:          task.ID.String(),
			Timestamp:   task.Timestamp.Format(e.timeLayout),
			Title:       task.Title,
			Description: task.Description,
			Tags:        append([]string{}, task.Tags...),
			Status:      string(task.Status),
		}
		if task.DueDate != nil {
			rec.DueDate = task.DueDate.Format(e.timeLayout)
		}
		records = append(records, rec)
	}
	return records
}

// Export writes tasks to w in the given format
func (e *Exporter) Export(w io.Writer, tasks []*domain.Task, format string) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}

	records := e.Records(tasks)
	switch f {
	case FormatCSV:
		err = writeCSV(w, records)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(records); err == nil {
			err = enc.Close()
		}
	case FormatPDF:
		err = writePDF(w, records)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	return nil
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.ID, r.Timestamp, r.Title, r.Description, r.DueDate, strings.Join(r.Tags, ","), r.Status}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, records []Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	if len(records) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks")
	}

	for _, r := range records {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("[%s] %s", r.Status, r.Title)), "0", "L", false)

		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(r.Description), "0", "L", false)

		meta := "Created " + r.Timestamp
		if r.DueDate != "" {
			meta += "  Due " + r.DueDate
		}
		if len(r.Tags) > 0 {
			meta += "  Tags " + strings.ToUpper(strings.Join(r.Tags, ", "))
		}
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr(meta), "0", "L", false)
		pdf.Ln(3)
	}

	return pdf.Output(w)
}
