package ui

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ActionResultMsg is returned after an item's exec command finishes.
type ActionResultMsg struct {
	Path    string
	Command string
	Success bool
	Error   error
	Output  string
}

// ActionRunner runs the shell commands attached to menu items.
type ActionRunner struct {
	shellPath string
	available bool
	dir       string
	timeout   time.Duration
}

// NewActionRunner looks up shell on PATH. Commands run in dir.
func NewActionRunner(shell, dir string) *ActionRunner {
	if shell == "" {
		shell = "sh"
	}
	path, err := exec.LookPath(shell)
	if err != nil {
		return &ActionRunner{shellPath: shell, dir: dir, timeout: 30 * time.Second}
	}
	return &ActionRunner{shellPath: path, available: true, dir: dir, timeout: 30 * time.Second}
}

// IsAvailable returns whether the shell was found
func (r *ActionRunner) IsAvailable() bool {
	return r.available
}

// Run executes command for the item at path and reports an ActionResultMsg.
func (r *ActionRunner) Run(path, command string) tea.Cmd {
	if !r.available {
		return func() tea.Msg {
			return ActionResultMsg{
				Path:    path,
				Command: command,
				Error:   fmt.Errorf("shell %q not found in PATH", r.shellPath),
			}
		}
	}
	shellPath, dir, timeout := r.shellPath, r.dir, r.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, shellPath, "-c", command)
		cmd.Dir = dir
		output, err := cmd.CombinedOutput()
		outStr := strings.TrimSpace(string(output))
		if err != nil {
			return ActionResultMsg{
				Path:    path,
				Command: command,
				Error:   fmt.Errorf("%s: %w", firstLine(outStr), err),
				Output:  outStr,
			}
		}
		return ActionResultMsg{Path: path, Command: command, Success: true, Output: outStr}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
