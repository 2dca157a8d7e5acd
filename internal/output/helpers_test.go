package output

import (
	"os"
	"time"

	"github.com/masmgr/filehistory/internal/git"
	"github.com/masmgr/filehistory/internal/page"
)

var reportTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func sampleReport() *HistoryReport {
	edits := []git.Edit{
		{
			Hash:    "1111111111111111111111111111111111111111",
			Time:    time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			Author:  git.AuthorInfo{Name: "Ann", Email: "ann@example.com"},
			Summary: "add page",
			Message: "add page\n\nfirst draft",
		},
		{
			Hash:    "2222222222222222222222222222222222222222",
			Time:    time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC),
			Author:  git.AuthorInfo{Name: "Bob", Email: "bob@example.com"},
			Summary: "fix | typo",
			Message: "fix | typo",
		},
		{
			Hash:    "3333333333333333333333333333333333333333",
			Author:  git.AuthorInfo{Name: "Ann", Email: "ann@example.com"},
			Summary: "undated",
			Message: "undated",
		},
	}
	return &HistoryReport{
		Root:        "/site",
		GeneratedAt: reportTime,
		Pages: []page.Meta{
			page.NewMeta("/site/posts/a.md", "/site", edits, reportTime),
			page.NewMeta("/site/posts/new.md", "/site", nil, reportTime),
		},
	}
}

func readTestFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
