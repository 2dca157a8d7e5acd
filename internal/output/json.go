package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/masmgr/filehistory/internal/page"
)

// JSONHistoryWriter writes history reports as JSON.
type JSONHistoryWriter struct{}

// JSONHistoryReport is the JSON output structure for a history report.
type JSONHistoryReport struct {
	Root        string     `json:"root,omitempty"`
	GeneratedAt string     `json:"generatedAt"`
	TotalPages  int        `json:"totalPages"`
	TotalEdits  int        `json:"totalEdits"`
	Pages       []JSONPage `json:"pages"`
}

// JSONPage is the JSON output structure for a single page.
type JSONPage struct {
	Path             string     `json:"path"`
	Link             string     `json:"link,omitempty"`
	PublishedTime    string     `json:"publishedTime"`
	LastModifiedTime string     `json:"lastModifiedTime"`
	Date             string     `json:"date"`
	History          []JSONEdit `json:"history"`
}

// JSONEdit is the JSON output structure for a single edit.
type JSONEdit struct {
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp,omitempty"`
	Datetime  string `json:"datetime"`
	Author    string `json:"author,omitempty"`
	Summary   string `json:"summary"`
	Message   string `json:"message"`
}

// Write outputs the history report as JSON.
func (w *JSONHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	pages := make([]JSONPage, len(report.Pages))
	for i, p := range report.Pages {
		pages[i] = newJSONPage(p, options)
	}

	jsonReport := JSONHistoryReport{
		Root:        report.Root,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		TotalPages:  len(report.Pages),
		TotalEdits:  report.TotalEdits(),
		Pages:       pages,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func newJSONPage(p page.Meta, options OutputOptions) JSONPage {
	edits := latestEdits(p.History, options.Top)
	history := make([]JSONEdit, len(edits))
	for i, e := range edits {
		history[i] = JSONEdit{
			Hash:      e.Hash,
			Timestamp: formatTimestamp(e.Time),
			Datetime:  humanDate(e.Time, options),
			Author:    e.Author.Name,
			Summary:   e.Summary,
			Message:   e.Message,
		}
	}
	return JSONPage{
		Path:             p.Path,
		Link:             p.Link,
		PublishedTime:    formatTimestamp(p.Published),
		LastModifiedTime: formatTimestamp(p.LastModified),
		Date:             humanDate(p.Published, options),
		History:          history,
	}
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return encodeJSON(out, data)
}

func encodeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
