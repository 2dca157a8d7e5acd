package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo wraps a non-bare repository in a temporary directory.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) path(rel string) string {
	return filepath.Join(r.dir, filepath.FromSlash(rel))
}

func (r *testRepo) write(rel, content string) {
	r.t.Helper()
	full := r.path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add(%s): %v", rel, err)
	}
}

func (r *testRepo) remove(rel string) {
	r.t.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.t.Fatalf("Remove(%s): %v", rel, err)
	}
}

func (r *testRepo) commit(msg string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	if err != nil {
		r.t.Fatalf("Commit(%q): %v", msg, err)
	}
	return hash
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (r *testRepo) headBranch() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("Head: %v", err)
	}
	return head.Name().Short()
}

func hours(n int) time.Time {
	return baseTime.Add(time.Duration(n) * time.Hour)
}

func summaries(edits []Edit) []string {
	out := make([]string, len(edits))
	for i, e := range edits {
		out[i] = e.Summary
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func assertSummaries(t *testing.T, edits []Edit, want ...string) {
	t.Helper()
	got := summaries(edits)
	if !equalStrings(got, want) {
		t.Fatalf("summaries = %q, want %q", got, want)
	}
}
