package output

import (
	"encoding/csv"
	"os"
)

// CSVHistoryWriter writes history reports as CSV, one row per edit.
type CSVHistoryWriter struct{}

// Write outputs the history report as CSV.
func (w *CSVHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"Path", "Hash", "Timestamp", "Date", "Author", "Summary"}
	if options.ShowMessages {
		headers = append(headers, "Message")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, p := range report.Pages {
		for _, e := range latestEdits(p.History, options.Top) {
			row := []string{
				p.Path,
				e.Hash,
				formatTimestamp(e.Time),
				humanDate(e.Time, options),
				e.Author.Name,
				e.Summary,
			}
			if options.ShowMessages {
				row = append(row, e.Message)
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
