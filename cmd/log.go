package cmd

import (
	"errors"

	"github.com/masmgr/filehistory/internal/git"
	"github.com/masmgr/filehistory/internal/output"
	"github.com/urfave/cli/v2"
)

// LogCmd returns the log command.
func LogCmd() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Aliases:   []string{"l"},
		Usage:     "Show the edit history of individual files",
		ArgsUsage: "<path>...",
		Flags:     commonFlags(),
		Action:    logAction,
	}
}

func logAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one path is required")
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	extractor := git.NewExtractor(git.Options{
		Logger: ctx.Log.WithField("component", "extractor"),
	})

	report := &output.HistoryReport{
		GeneratedAt: ctx.Now,
		Pages:       ctx.collectPages(c, extractor, c.Args().Slice(), ""),
	}
	return ctx.writeReport(report)
}
