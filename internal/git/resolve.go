package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

var (
	ErrNoRepository    = errors.New("no git repository found")
	ErrBareRepository  = errors.New("repository has no working tree")
	ErrOutsideWorktree = errors.New("path is outside the working tree")
)

// Location is a path resolved against its enclosing repository.
type Location struct {
	Repo *gogit.Repository
	Root string // canonical working tree root
	Path string // slash-separated, relative to Root
}

// Resolve finds the repository enclosing path and computes the path
// relative to its working tree. Discovery starts at path when it is a
// directory and at its parent otherwise, then walks upward.
func Resolve(path string) (*Location, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return nil, err
	}

	repo, err := openRepository(discoveryStart(path))
	if err != nil {
		return nil, err
	}

	root, err := worktreeRoot(repo)
	if err != nil {
		return nil, err
	}

	rel, err := relativeTo(root, canonical)
	if err != nil {
		return nil, err
	}

	return &Location{Repo: repo, Root: root, Path: rel}, nil
}

// discoveryStart returns the directory the upward search begins at: path
// itself for a directory, its parent otherwise. Symlinks are not resolved
// here, so a link pointing out of the working tree is caught by relativeTo.
func discoveryStart(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return abs
	}
	return filepath.Dir(abs)
}

// openRepository opens the repository containing dir, searching parents.
func openRepository(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNoRepository, dir)
		}
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	return repo, nil
}

// worktreeRoot returns the canonical root of the repository's working tree.
func worktreeRoot(repo *gogit.Repository) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return "", ErrBareRepository
		}
		return "", fmt.Errorf("worktree: %w", err)
	}
	return canonicalize(wt.Filesystem.Root())
}

// canonicalize makes path absolute and resolves symlinks and dot segments.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	return resolved, nil
}

// relativeTo strips root from the canonical path abs and returns the
// remainder in slash form.
func relativeTo(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorktree, abs)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorktree, abs)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
