// Package page derives the metadata a rendered page shows from a file's
// edit history.
package page

import (
	"path/filepath"
	"time"

	"github.com/masmgr/filehistory/internal/git"
)

// DefaultDateLayout renders dates like "5 March 2024".
const DefaultDateLayout = "2 January 2006"

// Meta is the history-derived metadata of one content file.
type Meta struct {
	Path         string
	Link         string
	Published    time.Time
	LastModified time.Time
	History      []git.Edit
}

// NewMeta derives page metadata from an ordered edit list. Published and
// LastModified are the earliest and latest dated edits, or now when the
// history has none. Undated edits are kept in History but never move either
// bound.
func NewMeta(path, root string, edits []git.Edit, now time.Time) Meta {
	published, lastModified, ok := Span(edits)
	if !ok {
		published, lastModified = now.UTC(), now.UTC()
	}
	return Meta{
		Path:         path,
		Link:         Link(path, root),
		Published:    published,
		LastModified: lastModified,
		History:      edits,
	}
}

// Span returns the earliest and latest dated edit times. ok is false when
// no edit is dated.
func Span(edits []git.Edit) (earliest, latest time.Time, ok bool) {
	for _, e := range edits {
		if !e.Dated() {
			continue
		}
		if !ok || e.Time.Before(earliest) {
			earliest = e.Time
		}
		if !ok || e.Time.After(latest) {
			latest = e.Time
		}
		ok = true
	}
	return earliest, latest, ok
}

// Contributors counts distinct authors in the history.
func (m Meta) Contributors() int {
	seen := make(map[string]struct{}, len(m.History))
	for _, e := range m.History {
		seen[e.Author.ContributorKey()] = struct{}{}
	}
	return len(seen)
}

// Link returns path relative to root in slash form. An index.html file links
// to its directory. Paths outside root have no link.
func Link(path, root string) string {
	if root == "" {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || hasDotDotPrefix(rel) {
		return ""
	}
	if filepath.Base(rel) == "index.html" {
		rel = filepath.Dir(rel)
		if rel == "." {
			return ""
		}
	}
	return filepath.ToSlash(rel)
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) > 2 && rel[:2] == ".." && rel[2] == filepath.Separator
}

// FormatDate renders t in UTC with layout, falling back to
// DefaultDateLayout. An undated time renders as an empty string.
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.UTC().Format(layout)
}
