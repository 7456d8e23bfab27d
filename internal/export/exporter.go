// Package export invokes the external note exporter that extracts raw notes
// from the note-taking application into a flat directory of markdown files.
package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/starford/ansuz/internal/apperr"
)

// Exporter produces the export tree. The production implementation is an
// external process; its failure is fatal to the whole run.
type Exporter interface {
	Export(ctx context.Context, root string) error
}

// Exec runs the exporter tool as an external process. The tool is looked up
// on PATH first, then under a fallback checkout directory (run through
// /bin/zsh, matching how the upstream exporter ships).
type Exec struct {
	Tool        string
	FallbackDir string
}

// NewExec creates an Exec exporter.
func NewExec(tool, fallbackDir string) *Exec {
	return &Exec{Tool: tool, FallbackDir: fallbackDir}
}

// Export invokes the exporter, producing a flat markdown tree under root.
func (e *Exec) Export(ctx context.Context, root string) error {
	argv, err := e.locate()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("export: create root: %w", err)
	}
	argv = append(argv,
		"--root-dir", root,
		"--convert-markdown", "true",
		"--filename-format", "&title-&id",
		"--use-subdirs", "false",
	)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("export: %s failed: %w\n%s", e.Tool, err, out)
	}
	return nil
}

// locate finds the exporter: PATH first, then the fallback checkout.
func (e *Exec) locate() ([]string, error) {
	if p, err := exec.LookPath(e.Tool); err == nil {
		return []string{p}, nil
	}
	local := filepath.Join(e.FallbackDir, e.Tool)
	if _, err := os.Stat(local); err == nil {
		return []string{"/bin/zsh", local}, nil
	}
	return nil, fmt.Errorf("export: %w: install %s or clone it into %s",
		apperr.ErrExporterNotFound, e.Tool, e.FallbackDir)
}
