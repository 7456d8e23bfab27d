// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/export"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/origin"
	"github.com/starford/ansuz/internal/preview"
	"github.com/starford/ansuz/internal/publisher"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/vcs"
	"github.com/starford/ansuz/internal/watcher"
)

// Run executes the publish pipeline, once or (with WithWatch) on every
// change to the export tree.
func Run(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}

	if app.watch {
		// Watch mode observes an externally maintained export tree; the
		// exporter is not re-invoked on every change.
		app.skipExport = true
		stats, err := app.execute(ctx, logger)
		if err != nil {
			return err
		}
		app.report(stats)
		return watcher.Watch(ctx, app.config.Export.Root, logger, func() {
			stats, err := app.execute(ctx, logger)
			if err != nil {
				logger.Error("pipeline failed", slog.String("error", err.Error()))
				return
			}
			app.report(stats)
		})
	}

	stats, err := app.execute(ctx, logger)
	if err != nil {
		return err
	}
	app.report(stats)
	return nil
}

// Serve runs the preview server over the published content tree.
func Serve(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}
	return preview.Serve(ctx, app.config.App.HTTP.Address(), app.config.Site.ContentPath(), logger)
}

// History prints recent journal entries.
func History(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if app.config.Journal.Path == "" {
		fmt.Fprintln(app.stdout, "Run journal is disabled.")
		return nil
	}

	db, err := journal.Open(app.config.Journal.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.Recent(20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(app.stdout, "No runs recorded yet.")
		return nil
	}
	for _, r := range runs {
		_, _ = headerColor.Fprintf(app.stdout, "#%d  %s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(app.stdout, "    processed: %d, skipped: %d, changed: %d\n", r.Processed, r.Skipped, r.Changed)
		for _, t := range r.Titles {
			fmt.Fprintf(app.stdout, "    + %s\n", t)
		}
	}
	return nil
}

// MCP serves the stdio MCP server over the content tree. The run report
// stays off stdout, which belongs to the MCP transport.
func MCP(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}
	tree, err := storage.NewFS(app.config.Site.ContentPath())
	if err != nil {
		return err
	}
	srv := mcpserver.New(tree, func(ctx context.Context) (*models.RunStats, error) {
		return app.execute(ctx, logger)
	})
	return srv.ServeStdio()
}

// setup materialises options, builds the logger, ensures the working
// directories exist, and fills in the default collaborators.
func setup(opts []Option) (*application, *slog.Logger, error) {
	app := newApplication(opts)
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		slog.String("export_root", cfg.Export.Root),
		slog.String("content_path", cfg.Site.ContentPath()),
		slog.String("origin_mode", cfg.Origin.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	if err := os.MkdirAll(cfg.Export.Root, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create export root: %w", err)
	}
	if err := os.MkdirAll(cfg.Site.ContentPath(), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create content dir: %w", err)
	}

	if app.exporter == nil {
		app.exporter = export.NewExec(cfg.Export.Tool, cfg.Export.FallbackDir)
	}
	if app.git == nil {
		app.git = vcs.NewExecGit(cfg.Site.Root)
	}
	if app.notifier == nil {
		app.notifier = origin.ForMode(cfg.Origin.Mode)
	}
	return app, logger, nil
}

// execute runs one full pipeline pass: export → reconcile → journal →
// commit/push → notify origin. The steps form a strict sequence; any
// external process failure aborts the pass.
func (a *application) execute(ctx context.Context, logger *slog.Logger) (*models.RunStats, error) {
	cfg := a.config
	started := time.Now()

	if !a.skipExport {
		if err := a.exporter.Export(ctx, cfg.Export.Root); err != nil {
			return nil, err
		}
	}

	exportFS, err := storage.NewFS(cfg.Export.Root)
	if err != nil {
		return nil, err
	}
	tree, err := storage.NewFS(cfg.Site.ContentPath())
	if err != nil {
		return nil, err
	}

	idx, err := content.LoadIndex(tree)
	if err != nil {
		return nil, err
	}

	stats, err := publisher.New(exportFS, tree, idx, logger).Run()
	if err != nil {
		return nil, err
	}
	if stats == nil || stats.Processed == 0 {
		return stats, nil
	}

	a.recordRun(started, stats, logger)

	if !cfg.Git.Disabled {
		if err := a.git.Add(ctx, cfg.Site.ContentDir); err != nil {
			return nil, err
		}
		staged, err := a.git.HasStagedChanges(ctx)
		if err != nil {
			return nil, err
		}
		if staged {
			msg := fmt.Sprintf("Publish %d posts", stats.Processed)
			if err := a.git.Commit(ctx, msg); err != nil {
				return nil, err
			}
			if err := a.git.Push(ctx); err != nil {
				return nil, err
			}
		}
	}

	if err := a.notifier.MarkPublished(ctx, stats.PendingTitles); err != nil {
		return nil, err
	}

	return stats, nil
}

// recordRun stores the run in the journal. Journal problems are logged, not
// fatal; the journal is bookkeeping, not pipeline state.
func (a *application) recordRun(started time.Time, stats *models.RunStats, logger *slog.Logger) {
	if a.config.Journal.Path == "" {
		return
	}
	db, err := journal.Open(a.config.Journal.Path)
	if err != nil {
		logger.Warn("journal: open failed", slog.String("error", err.Error()))
		return
	}
	defer db.Close()
	if err := db.Record(started, time.Now(), stats); err != nil {
		logger.Warn("journal: record failed", slog.String("error", err.Error()))
	}
}

var (
	reportColor = color.New(color.FgGreen, color.Bold)
	noticeColor = color.New(color.FgYellow)
	headerColor = color.New(color.FgCyan)
)

// report prints the human run summary.
func (a *application) report(stats *models.RunStats) {
	switch {
	case stats == nil:
		fmt.Fprintln(a.stdout, "No exported markdown files found.")
	case stats.Processed == 0:
		_, _ = noticeColor.Fprintln(a.stdout, "No matching notes found with #blog and #publish/#published.")
	default:
		_, _ = reportColor.Fprintf(a.stdout, "Processed: %d, skipped: %d\n", stats.Processed, stats.Skipped)
	}
}
