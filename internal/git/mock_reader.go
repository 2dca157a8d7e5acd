package git

import "context"

// MockSource is a test double for Source.
// It serves predefined histories keyed by path without needing a real Git
// repository.
type MockSource struct {
	Histories map[string][]Edit
	Calls     []string
}

// NewMockSource creates a new MockSource with the given data.
func NewMockSource(histories map[string][]Edit) *MockSource {
	return &MockSource{Histories: histories}
}

// History returns a sorted copy of the predefined history for path.
func (m *MockSource) History(_ context.Context, path string) []Edit {
	m.Calls = append(m.Calls, path)
	edits := append([]Edit(nil), m.Histories[path]...)
	SortEdits(edits)
	return edits
}

// Compile-time interface conformance check.
var _ Source = (*MockSource)(nil)
