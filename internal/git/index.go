package git

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
)

// Index holds the edit history of every path in a repository, built with a
// single walk of the commit graph. Lookups are read-only and safe for
// concurrent use once BuildIndex has returned.
type Index struct {
	root  string
	edits map[string][]Edit
	log   logrus.FieldLogger
}

// BuildIndex opens the repository enclosing repoPath and records, for every
// commit reachable from HEAD, each leaf path that differs from the commit's
// first parent. A repository without commits gives an empty index. Only
// failing to locate the repository, or a cancelled context, is an error.
func BuildIndex(ctx context.Context, repoPath string, opts Options) (*Index, error) {
	log := opts.logger().WithField("repo", repoPath)

	repo, err := openRepository(discoveryStart(repoPath))
	if err != nil {
		return nil, err
	}
	root, err := worktreeRoot(repo)
	if err != nil {
		return nil, err
	}

	idx := &Index{root: root, edits: make(map[string][]Edit), log: log}

	commits := 0
	for c, err := range Commits(ctx, repo) {
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.WithError(err).Debug("skipping commit")
			continue
		}

		tree, parentTree, err := commitTrees(c)
		if err != nil {
			log.WithError(err).WithField("commit", c.Hash.String()).Debug("treating commit as unchanged")
			continue
		}

		edit := NewEdit(c)
		for p, err := range Changes(parentTree, tree, "") {
			if err != nil {
				// Paths inside the unreadable subtree count as unchanged.
				log.WithError(err).WithField("commit", c.Hash.String()).Debug("skipping unreadable subtree")
				continue
			}
			idx.edits[p] = append(idx.edits[p], edit)
		}
		commits++
	}

	for _, edits := range idx.edits {
		SortEdits(edits)
	}

	log.WithFields(logrus.Fields{"commits": commits, "paths": len(idx.edits)}).Debug("index built")
	return idx, nil
}

// Root returns the canonical working tree root of the indexed repository.
func (idx *Index) Root() string {
	return idx.root
}

// Paths returns every indexed repository-relative path, sorted.
func (idx *Index) Paths() []string {
	paths := make([]string, 0, len(idx.edits))
	for p := range idx.edits {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Edits returns the history of a slash-separated repository-relative path.
func (idx *Index) Edits(rel string) []Edit {
	edits := idx.edits[rel]
	if len(edits) == 0 {
		return nil
	}
	return append([]Edit(nil), edits...)
}

// Lookup returns the history of a filesystem path, canonicalized the same
// way Extract does. Paths outside the indexed working tree have no history.
func (idx *Index) Lookup(path string) []Edit {
	abs, err := canonicalize(path)
	if err != nil {
		idx.log.WithError(err).WithField("path", path).Debug("no history available")
		return nil
	}
	rel, err := relativeTo(idx.root, abs)
	if err != nil {
		idx.log.WithError(err).WithField("path", path).Debug("no history available")
		return nil
	}
	return idx.Edits(rel)
}

// History implements Source.
func (idx *Index) History(_ context.Context, path string) []Edit {
	return idx.Lookup(path)
}
