// Package vcs stages, commits, and pushes the content tree via the git CLI.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Git is the version-control collaborator at the end of the pipeline.
type Git interface {
	Add(ctx context.Context, path string) error
	// HasStagedChanges reports whether the staged diff is non-empty.
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
}

// ExecGit is the production implementation shelling out to git.
type ExecGit struct {
	repoRoot string
}

// NewExecGit creates an ExecGit running inside repoRoot.
func NewExecGit(repoRoot string) *ExecGit {
	return &ExecGit{repoRoot: repoRoot}
}

func (g *ExecGit) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("vcs: git %s: %w\n%s", args[0], err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Add stages path.
func (g *ExecGit) Add(ctx context.Context, path string) error {
	_, err := g.run(ctx, "add", path)
	return err
}

// HasStagedChanges reports whether the staged diff is non-empty.
// git diff --cached --quiet exits 1 when there are staged changes.
func (g *ExecGit) HasStagedChanges(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	cmd.Dir = g.repoRoot
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("vcs: git diff --cached: %w", err)
}

// Commit commits the staged changes with the given message.
func (g *ExecGit) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch. A push failure aborts the run; the posts
// stay written locally and are retried on the next run.
func (g *ExecGit) Push(ctx context.Context) error {
	_, err := g.run(ctx, "push")
	return err
}
