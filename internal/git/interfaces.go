package git

import "context"

// Source provides the edit history of files.
// This abstraction lets callers swap per-file extraction for a prebuilt index
// and lets tests supply fixed histories.
type Source interface {
	// History returns the edits of path, oldest first. It never fails; an
	// unavailable history is empty.
	History(ctx context.Context, path string) []Edit
}

// Compile-time interface conformance checks.
var (
	_ Source = (*Extractor)(nil)
	_ Source = (*Index)(nil)
)
