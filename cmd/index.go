package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/masmgr/filehistory/config"
	"github.com/masmgr/filehistory/internal/git"
	"github.com/masmgr/filehistory/internal/output"
	"github.com/urfave/cli/v2"
)

// IndexCmd returns the index command.
func IndexCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
	)

	return &cli.Command{
		Name:      "index",
		Aliases:   []string{"i"},
		Usage:     "Show the edit history of every file below a directory using one repository walk",
		ArgsUsage: "[dir]",
		Flags:     flags,
		Action:    indexAction,
	}
}

func indexAction(c *cli.Context) error {
	dir := "."
	if c.NArg() > 0 {
		dir = c.Args().First()
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(dir, ctx.Config.Filters)
	if err != nil {
		return err
	}

	var source git.Source
	idx, err := git.BuildIndex(c.Context, dir, git.Options{
		Logger: ctx.Log.WithField("component", "index"),
	})
	switch {
	case err == nil:
		source = idx
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		// Histories stay empty; the report is still produced.
		ctx.Log.WithError(err).Warn("no history available")
		source = git.NewExtractor(git.Options{Logger: ctx.Log.WithField("component", "extractor")})
	}

	report := &output.HistoryReport{
		Root:        dir,
		GeneratedAt: ctx.Now,
		Pages:       ctx.collectPages(c, source, files, dir),
	}
	return ctx.writeReport(report)
}

// collectFiles returns the regular files below dir that pass the filters,
// in lexical order. Paths are joined onto dir.
func collectFiles(dir string, filters config.FilterConfig) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		ok, err := matchesFilters(filepath.ToSlash(rel), filters)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return files, nil
}

// matchesFilters checks if a slash-separated path matches the include/exclude filters.
func matchesFilters(path string, filters config.FilterConfig) (bool, error) {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range filters.Exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	// If no include patterns, accept all
	if len(filters.Include) == 0 {
		return true, nil
	}

	for _, pattern := range filters.Include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
