package output

import (
	"io"
	"os"
	"time"

	"github.com/masmgr/filehistory/internal/git"
	"github.com/masmgr/filehistory/internal/page"
)

const shortHashLen = 8

// latestEdits keeps the top most recent edits of an oldest-first history,
// preserving order.
func latestEdits(edits []git.Edit, top int) []git.Edit {
	if top <= 0 || top >= len(edits) {
		return edits
	}
	return edits[len(edits)-top:]
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

// formatTimestamp renders a machine-readable time; undated edits give "".
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func humanDate(t time.Time, options OutputOptions) string {
	return page.FormatDate(t, options.DateLayout)
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
