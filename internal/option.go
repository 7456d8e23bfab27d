package internal

import (
	"io"
	"os"

	"github.com/starford/ansuz/internal/export"
	"github.com/starford/ansuz/internal/origin"
	"github.com/starford/ansuz/internal/vcs"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	exporter   export.Exporter
	git        vcs.Git
	notifier   origin.Notifier
	skipExport bool
	watch      bool
	stdout     io.Writer
}

func newApplication(opts []Option) *application {
	app := &application{stdout: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithExporter overrides the note exporter collaborator.
func WithExporter(e export.Exporter) Option {
	return func(a *application) {
		a.exporter = e
	}
}

// WithGit overrides the version-control collaborator.
func WithGit(g vcs.Git) Option {
	return func(a *application) {
		a.git = g
	}
}

// WithNotifier overrides the origin-store notifier.
func WithNotifier(n origin.Notifier) Option {
	return func(a *application) {
		a.notifier = n
	}
}

// WithSkipExport skips the exporter invocation and reconciles whatever is
// already in the export tree.
func WithSkipExport(skip bool) Option {
	return func(a *application) {
		a.skipExport = skip
	}
}

// WithWatch re-runs the pipeline whenever the export tree changes.
func WithWatch(watch bool) Option {
	return func(a *application) {
		a.watch = watch
	}
}

// WithStdout redirects the human run report.
func WithStdout(w io.Writer) Option {
	return func(a *application) {
		a.stdout = w
	}
}
