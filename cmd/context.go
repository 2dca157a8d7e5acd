package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/masmgr/filehistory/config"
	"github.com/masmgr/filehistory/internal/git"
	"github.com/masmgr/filehistory/internal/output"
	"github.com/masmgr/filehistory/internal/page"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
type CommandContext struct {
	Config *config.Config
	Log    *logrus.Logger
	Now    time.Time
	Output output.OutputOptions
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, applies flag overrides and sets up logging.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	level, err := cfg.Logging.ParseLevel()
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config: cfg,
		Log:    newLogger(level),
		Now:    time.Now(),
		Output: outputOptions(c, cfg),
	}, nil
}

func newLogger(level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out: os.Stderr,
		Formatter: &logrus.TextFormatter{
			DisableTimestamp: true,
		},
		Hooks: logrus.LevelHooks{},
		Level: level,
	}
}

// outputOptions combines configured output defaults with CLI-only flags.
func outputOptions(c *cli.Context, cfg *config.Config) output.OutputOptions {
	return output.OutputOptions{
		Format:       getOutputFormat(cfg.Output.Format),
		Top:          cfg.Output.Top,
		OutputPath:   c.String("output"),
		DateLayout:   cfg.Output.DateLayout,
		ShowMessages: cfg.Output.ShowMessages,
	}
}

// collectPages reads the history of each path from source.
func (ctx *CommandContext) collectPages(c *cli.Context, source git.Source, paths []string, root string) []page.Meta {
	pages := make([]page.Meta, 0, len(paths))
	for _, p := range paths {
		edits := source.History(c.Context, p)
		ctx.Log.WithFields(logrus.Fields{"path": p, "edits": len(edits)}).Debug("history read")
		pages = append(pages, page.NewMeta(p, root, edits, ctx.Now))
	}
	return pages
}

// writeReport renders report in the configured format.
func (ctx *CommandContext) writeReport(report *output.HistoryReport) error {
	writer := output.NewHistoryReportWriter(ctx.Output.Format)
	if err := writer.Write(report, ctx.Output); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
