package git

import (
	"fmt"
	"iter"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Changes lazily enumerates the leaf paths whose content, mode or existence
// differs between from and to. A nil tree is the empty tree. When scope is
// non-empty only scope itself and paths below it are reported, and only
// subtrees on the way to scope are loaded. Breaking out of the loop stops
// the walk.
func Changes(from, to *object.Tree, scope string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w := &treeWalker{scope: strings.Trim(scope, "/"), yield: yield}
		w.diff("", from, to)
	}
}

type treeWalker struct {
	scope string
	yield func(string, error) bool
}

// diff compares two trees at dir. It returns false once the consumer has
// stopped.
func (w *treeWalker) diff(dir string, from, to *object.Tree) bool {
	fromEntries := entriesOf(from)
	toEntries := entriesOf(to)

	toByName := make(map[string]object.TreeEntry, len(toEntries))
	for _, e := range toEntries {
		toByName[e.Name] = e
	}

	seen := make(map[string]struct{}, len(fromEntries))
	for _, a := range fromEntries {
		seen[a.Name] = struct{}{}
		var bp *object.TreeEntry
		if b, ok := toByName[a.Name]; ok {
			bp = &b
		}
		if !w.pair(joinPath(dir, a.Name), from, &a, to, bp) {
			return false
		}
	}

	for _, b := range toEntries {
		if _, ok := seen[b.Name]; ok {
			continue
		}
		if !w.pair(joinPath(dir, b.Name), from, nil, to, &b) {
			return false
		}
	}
	return true
}

// pair compares the entries found at path p on each side; either may be nil.
func (w *treeWalker) pair(p string, fromTree *object.Tree, a *object.TreeEntry, toTree *object.Tree, b *object.TreeEntry) bool {
	within := w.within(p)
	if !within && !w.leadsTo(p) {
		return true
	}
	if a != nil && b != nil && a.Hash == b.Hash && a.Mode == b.Mode {
		return true
	}

	aDir := a != nil && a.Mode == filemode.Dir
	bDir := b != nil && b.Mode == filemode.Dir
	aLeaf := a != nil && !aDir
	bLeaf := b != nil && !bDir

	if within && (aLeaf || bLeaf) {
		if !w.yield(p, nil) {
			return false
		}
	}

	if !aDir && !bDir {
		return true
	}

	var subFrom, subTo *object.Tree
	var err error
	if aDir {
		if subFrom, err = fromTree.Tree(a.Name); err != nil {
			return w.yield("", fmt.Errorf("load tree %s: %w", p, err))
		}
	}
	if bDir {
		if subTo, err = toTree.Tree(b.Name); err != nil {
			return w.yield("", fmt.Errorf("load tree %s: %w", p, err))
		}
	}
	return w.diff(p, subFrom, subTo)
}

// within reports whether p is the scope or lies below it.
func (w *treeWalker) within(p string) bool {
	return w.scope == "" || p == w.scope || strings.HasPrefix(p, w.scope+"/")
}

// leadsTo reports whether p is a directory on the way to the scope.
func (w *treeWalker) leadsTo(p string) bool {
	return strings.HasPrefix(w.scope, p+"/")
}

func entriesOf(t *object.Tree) []object.TreeEntry {
	if t == nil {
		return nil
	}
	return t.Entries
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
