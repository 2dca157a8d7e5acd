package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
)

// Options configures an Extractor or an Index.
type Options struct {
	// Logger receives debug output for failures that are absorbed. Nil
	// discards it.
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.Out = io.Discard
	return l
}

// Extractor reads the edit history of single files. Every call reopens the
// repository and walks the commit graph from HEAD; it holds no state between
// calls and is safe for concurrent use.
type Extractor struct {
	log logrus.FieldLogger
}

// NewExtractor creates an extractor.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{log: opts.logger()}
}

// FileHistory returns the edits of path using a default extractor.
func FileHistory(path string) []Edit {
	return NewExtractor(Options{}).Extract(context.Background(), path)
}

// History implements Source.
func (x *Extractor) History(ctx context.Context, path string) []Edit {
	return x.Extract(ctx, path)
}

// Extract returns the commits reachable from HEAD that changed path, oldest
// first. It never fails: when the repository cannot be resolved or has no
// commits the result is empty, and commits that cannot be inspected are
// skipped. A cancelled context ends the walk early with the edits found so
// far.
func (x *Extractor) Extract(ctx context.Context, path string) []Edit {
	log := x.log.WithField("path", path)

	loc, err := Resolve(path)
	if err != nil {
		log.WithError(err).Debug("no history available")
		return nil
	}
	if loc.Path == "" {
		log.Debug("path is the working tree root")
		return nil
	}

	var edits []Edit
	for c, err := range Commits(ctx, loc.Repo) {
		if err != nil {
			if ctx.Err() != nil {
				log.WithError(err).Debug("commit walk cancelled")
				break
			}
			log.WithError(err).Debug("skipping commit")
			continue
		}

		changed, err := ChangedIn(c, loc.Path)
		if err != nil {
			log.WithError(err).WithField("commit", c.Hash.String()).Debug("treating commit as unchanged")
			continue
		}
		if changed {
			edits = append(edits, NewEdit(c))
		}
	}

	SortEdits(edits)
	return edits
}

// Commits walks every commit reachable from HEAD exactly once, depth first
// along first parents. An unborn HEAD yields nothing. A commit that cannot
// be loaded is yielded as an error and its ancestry is not followed; the
// walk goes on as long as the consumer keeps ranging.
func Commits(ctx context.Context, repo *gogit.Repository) iter.Seq2[*object.Commit, error] {
	return func(yield func(*object.Commit, error) bool) {
		head, err := repo.Head()
		if err != nil {
			if !errors.Is(err, plumbing.ErrReferenceNotFound) {
				yield(nil, fmt.Errorf("resolve HEAD: %w", err))
			}
			return
		}

		seen := map[plumbing.Hash]struct{}{head.Hash(): {}}
		stack := []plumbing.Hash{head.Hash()}
		for len(stack) > 0 {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			h := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			c, err := repo.CommitObject(h)
			if err != nil {
				if !yield(nil, fmt.Errorf("load commit %s: %w", h, err)) {
					return
				}
				continue
			}

			// Push in reverse so the first parent is visited next.
			for i := len(c.ParentHashes) - 1; i >= 0; i-- {
				p := c.ParentHashes[i]
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				stack = append(stack, p)
			}

			if !yield(c, nil) {
				return
			}
		}
	}
}

// ChangedIn reports whether path differs between c and its first parent, or
// between c and the empty tree when c is a root commit.
func ChangedIn(c *object.Commit, path string) (bool, error) {
	tree, parentTree, err := commitTrees(c)
	if err != nil {
		return false, err
	}

	for p, err := range Changes(parentTree, tree, path) {
		if err != nil {
			return false, err
		}
		if p == path {
			return true, nil
		}
	}
	return false, nil
}

// commitTrees loads the tree of c and of its first parent. The parent tree
// is nil for a root commit.
func commitTrees(c *object.Commit) (tree, parentTree *object.Tree, err error) {
	tree, err = c.Tree()
	if err != nil {
		return nil, nil, fmt.Errorf("tree of %s: %w", c.Hash, err)
	}
	if c.NumParents() == 0 {
		return tree, nil, nil
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, nil, fmt.Errorf("first parent of %s: %w", c.Hash, err)
	}
	parentTree, err = parent.Tree()
	if err != nil {
		return nil, nil, fmt.Errorf("tree of %s: %w", parent.Hash, err)
	}
	return tree, parentTree, nil
}

// NewEdit builds the edit record for a commit. Only trailing newlines are
// stripped from the message.
func NewEdit(c *object.Commit) Edit {
	message := strings.TrimRight(c.Message, "\r\n")
	return Edit{
		Hash:    c.Hash.String(),
		Time:    commitTime(c),
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Summary: summaryLine(message),
		Message: message,
	}
}

// commitTime prefers the committer time and falls back to the author time.
// It returns the zero time when neither was recorded.
func commitTime(c *object.Commit) time.Time {
	when := c.Committer.When
	if when.IsZero() {
		when = c.Author.When
	}
	if when.IsZero() {
		return time.Time{}
	}
	return when.UTC()
}
