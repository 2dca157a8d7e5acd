package output

import (
	"time"

	"github.com/masmgr/filehistory/internal/page"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement HistoryReportWriter.
var (
	_ HistoryReportWriter = (*ConsoleHistoryWriter)(nil)
	_ HistoryReportWriter = (*JSONHistoryWriter)(nil)
	_ HistoryReportWriter = (*CSVHistoryWriter)(nil)
	_ HistoryReportWriter = (*MarkdownHistoryWriter)(nil)
	_ HistoryReportWriter = (*CIHistoryWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format       OutputFormat
	Top          int    // most recent edits shown per page; 0 shows all
	OutputPath   string // empty writes to stdout
	DateLayout   string // human date layout, page.DefaultDateLayout when empty
	ShowMessages bool   // include full commit messages where the format allows
}

// HistoryReport holds the history-derived metadata of a set of pages.
type HistoryReport struct {
	Root        string
	GeneratedAt time.Time
	Pages       []page.Meta
}

// TotalEdits counts edits across all pages.
func (r *HistoryReport) TotalEdits() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.History)
	}
	return n
}

// HistoryReportWriter writes history reports.
type HistoryReportWriter interface {
	Write(report *HistoryReport, options OutputOptions) error
}

// NewHistoryReportWriter creates a report writer for the specified format.
func NewHistoryReportWriter(format OutputFormat) HistoryReportWriter {
	switch format {
	case FormatJSON:
		return &JSONHistoryWriter{}
	case FormatCSV:
		return &CSVHistoryWriter{}
	case FormatMarkdown:
		return &MarkdownHistoryWriter{}
	case FormatCI:
		return &CIHistoryWriter{}
	default:
		return &ConsoleHistoryWriter{}
	}
}
