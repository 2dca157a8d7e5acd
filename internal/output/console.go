package output

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// ConsoleHistoryWriter writes history reports as colored text.
type ConsoleHistoryWriter struct{}

// Write outputs the history report to the console.
func (w *ConsoleHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	title := color.New(color.FgGreen).Add(color.Underline)
	faint := color.New(color.FgHiBlack)

	if report.Root != "" {
		fmt.Fprintf(out, "Root: %s\n", report.Root)
	}
	fmt.Fprintf(out, "Pages: %d, edits: %d\n", len(report.Pages), report.TotalEdits())

	for _, p := range report.Pages {
		fmt.Fprintln(out)
		title.Fprintln(out, p.Path)

		if len(p.History) == 0 {
			faint.Fprintln(out, "  no recorded history")
			continue
		}

		fmt.Fprintf(out, "  Published:     %s (%s)\n", humanDate(p.Published, options), relativeAge(p.Published, report))
		fmt.Fprintf(out, "  Last modified: %s (%s)\n", humanDate(p.LastModified, options), relativeAge(p.LastModified, report))
		fmt.Fprintf(out, "  Edits: %d, contributors: %d\n\n", len(p.History), p.Contributors())

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  #\tDate\tCommit\tAuthor\tSummary")
		for i, e := range latestEdits(p.History, options.Top) {
			date := humanDate(e.Time, options)
			if date == "" {
				date = "unknown"
			}
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n",
				i+1,
				date,
				color.YellowString(shortHash(e.Hash)),
				e.Author.Name,
				truncateMessage(e.Summary, 72),
			)
		}
		tw.Flush()

		if options.ShowMessages {
			for _, e := range latestEdits(p.History, options.Top) {
				if e.Message == e.Summary {
					continue
				}
				fmt.Fprintln(out)
				color.New(color.FgYellow).Fprintf(out, "  %s\n", shortHash(e.Hash))
				fmt.Fprintf(out, "%s\n", indent(e.Message, "    "))
			}
		}
	}

	return nil
}

// Helper functions

func relativeAge(t time.Time, report *HistoryReport) string {
	return humanize.RelTime(t, report.GeneratedAt, "ago", "from now")
}

func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:maxLen-3]) + "..."
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
