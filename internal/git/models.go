package git

import (
	"sort"
	"strings"
	"time"
)

// Edit is one commit that changed a tracked path.
type Edit struct {
	Hash    string
	Time    time.Time // UTC; zero when the commit time is unknown
	Author  AuthorInfo
	Summary string // first line of Message
	Message string
}

// Dated reports whether the edit carries a usable commit time.
func (e Edit) Dated() bool {
	return !e.Time.IsZero()
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// ContributorKey returns a normalized identifier for grouping contributors.
func (a AuthorInfo) ContributorKey() string {
	return strings.ToLower(a.Email)
}

// SortEdits orders edits oldest first. Undated edits go last, in their
// input order.
func SortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i], edits[j]
		if a.Dated() != b.Dated() {
			return a.Dated()
		}
		return a.Time.Before(b.Time)
	})
}

// summaryLine returns the first line of a commit message.
func summaryLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimSuffix(message, "\r")
}
