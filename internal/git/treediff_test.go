package git

import (
	"sort"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func (r *testRepo) tree(h plumbing.Hash) *object.Tree {
	r.t.Helper()
	c, err := r.repo.CommitObject(h)
	if err != nil {
		r.t.Fatalf("CommitObject: %v", err)
	}
	tree, err := c.Tree()
	if err != nil {
		r.t.Fatalf("Tree: %v", err)
	}
	return tree
}

func collectChanges(t *testing.T, from, to *object.Tree, scope string) []string {
	t.Helper()
	var out []string
	for p, err := range Changes(from, to, scope) {
		if err != nil {
			t.Fatalf("Changes: %v", err)
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func TestChanges(t *testing.T) {
	r := newTestRepo(t)
	r.write("keep.txt", "same\n")
	r.write("mod.txt", "v1\n")
	r.write("gone.txt", "v1\n")
	r.write("dir/inner.txt", "v1\n")
	r.write("dir/deep/leaf.txt", "v1\n")
	r.write("flip", "file\n")
	c1 := r.commit("first", hours(0))

	r.write("mod.txt", "v2\n")
	r.remove("gone.txt")
	r.write("dir/deep/leaf.txt", "v2\n")
	r.write("added/new.txt", "v1\n")
	r.remove("flip")
	r.write("flip/now-a-dir.txt", "v1\n")
	c2 := r.commit("second", hours(1))

	t1, t2 := r.tree(c1), r.tree(c2)

	tests := []struct {
		name  string
		from  *object.Tree
		to    *object.Tree
		scope string
		want  []string
	}{
		{
			name: "whole tree",
			from: t1, to: t2,
			want: []string{"added/new.txt", "dir/deep/leaf.txt", "flip", "flip/now-a-dir.txt", "gone.txt", "mod.txt"},
		},
		{
			name: "empty tree to first",
			from: nil, to: t1,
			want: []string{"dir/deep/leaf.txt", "dir/inner.txt", "flip", "gone.txt", "keep.txt", "mod.txt"},
		},
		{
			name: "identical trees",
			from: t2, to: t2,
			want: nil,
		},
		{
			name: "scoped to a file",
			from: t1, to: t2, scope: "dir/deep/leaf.txt",
			want: []string{"dir/deep/leaf.txt"},
		},
		{
			name: "scoped to an unchanged file",
			from: t1, to: t2, scope: "dir/inner.txt",
			want: nil,
		},
		{
			name: "scoped to a directory",
			from: t1, to: t2, scope: "dir",
			want: []string{"dir/deep/leaf.txt"},
		},
		{
			name: "scope is a name prefix only",
			from: t1, to: t2, scope: "mod",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectChanges(t, tt.from, tt.to, tt.scope)
			if !equalStrings(got, tt.want) {
				t.Fatalf("Changes = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChanges_StopsWhenConsumerBreaks(t *testing.T) {
	r := newTestRepo(t)
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d/e.txt", "d/f.txt"} {
		r.write(name, "x\n")
	}
	tree := r.tree(r.commit("add", hours(0)))

	n := 0
	for _, err := range Changes(nil, tree, "") {
		if err != nil {
			t.Fatalf("Changes: %v", err)
		}
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("consumed %d changes, want 2", n)
	}
}
