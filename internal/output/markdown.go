package output

import (
	"fmt"
	"strings"
)

// MarkdownHistoryWriter writes history reports as Markdown.
type MarkdownHistoryWriter struct{}

// Write outputs the history report as Markdown.
func (w *MarkdownHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# File History")
	fmt.Fprintln(out)
	if report.Root != "" {
		fmt.Fprintf(out, "**Root:** %s\n\n", report.Root)
	}
	fmt.Fprintf(out, "**Pages:** %d, **Edits:** %d\n\n", len(report.Pages), report.TotalEdits())

	for _, p := range report.Pages {
		fmt.Fprintf(out, "## `%s`\n\n", p.Path)

		if len(p.History) == 0 {
			fmt.Fprintln(out, "_No recorded history._")
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprintf(out, "- **Published:** %s\n", humanDate(p.Published, options))
		fmt.Fprintf(out, "- **Last modified:** %s\n\n", humanDate(p.LastModified, options))

		fmt.Fprintln(out, "| # | Date | Commit | Summary |")
		fmt.Fprintln(out, "|---|------|--------|---------|")
		for i, e := range latestEdits(p.History, options.Top) {
			date := humanDate(e.Time, options)
			if date == "" {
				date = "unknown"
			}
			fmt.Fprintf(out, "| %d | %s | `%s` | %s |\n",
				i+1, date, shortHash(e.Hash), escapeMarkdown(e.Summary))
		}
		fmt.Fprintln(out)

		if options.ShowMessages {
			for _, e := range latestEdits(p.History, options.Top) {
				fmt.Fprintf(out, "### %s\n\n```\n%s\n```\n\n", shortHash(e.Hash), e.Message)
			}
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
