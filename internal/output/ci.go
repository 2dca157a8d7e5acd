package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIHistoryWriter writes history reports as NDJSON (one JSON object per line) for CI pipelines.
type CIHistoryWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type           string `json:"type"`
	TotalPages     int    `json:"totalPages"`
	TotalEdits     int    `json:"totalEdits"`
	UntrackedPages int    `json:"untrackedPages"`
	UndatedEdits   int    `json:"undatedEdits"`
}

// CIPageEntry represents a single page in CI output.
type CIPageEntry struct {
	Type             string `json:"type"`
	Path             string `json:"path"`
	PublishedTime    string `json:"publishedTime"`
	LastModifiedTime string `json:"lastModifiedTime"`
	Edits            int    `json:"edits"`
}

// CIEditEntry represents a single edit in CI output.
type CIEditEntry struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp,omitempty"`
	Summary   string `json:"summary"`
}

// Write outputs the history report as NDJSON.
func (w *CIHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:       "summary",
		TotalPages: len(report.Pages),
		TotalEdits: report.TotalEdits(),
	}
	for _, p := range report.Pages {
		if len(p.History) == 0 {
			summary.UntrackedPages++
		}
		for _, e := range p.History {
			if !e.Dated() {
				summary.UndatedEdits++
			}
		}
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, p := range report.Pages {
		entry := CIPageEntry{
			Type:             "page",
			Path:             p.Path,
			PublishedTime:    formatTimestamp(p.Published),
			LastModifiedTime: formatTimestamp(p.LastModified),
			Edits:            len(p.History),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
		for _, e := range latestEdits(p.History, options.Top) {
			edit := CIEditEntry{
				Type:      "edit",
				Path:      p.Path,
				Hash:      e.Hash,
				Timestamp: formatTimestamp(e.Time),
				Summary:   e.Summary,
			}
			if err := writeNDJSONLine(out, edit); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
