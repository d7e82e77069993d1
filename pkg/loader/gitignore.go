package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateDir is the per-project directory holding config and the state DB.
const StateDir = ".mw"

// EnsureStateDirIgnored makes sure .mw/ is listed in the project's .gitignore.
// It creates the file when missing and leaves existing content untouched.
// Calling it again is a no-op.
func EnsureStateDirIgnored(projectDir string) error {
	if projectDir == "" {
		var err error
		projectDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}
	path := filepath.Join(projectDir, ".gitignore")

	ignored, err := isIgnored(path, StateDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if ignored {
		return nil
	}
	return appendPattern(path, StateDir+"/")
}

// isIgnored scans a .gitignore for a line covering dir.
func isIgnored(path, dir string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if coversDir(line, dir) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// coversDir reports whether a gitignore line ignores the whole of dir:
// "dir", "dir/", "dir/*", "dir/**" or "dir/**/*", optionally rooted with "/".
func coversDir(line, dir string) bool {
	rest, ok := strings.CutPrefix(strings.TrimPrefix(line, "/"), dir)
	if !ok {
		return false
	}
	switch rest {
	case "", "/", "/*", "/**", "/**/*":
		return true
	}
	return false
}

func appendPattern(path, pattern string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	var b strings.Builder
	if len(content) > 0 {
		if content[len(content)-1] != '\n' {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("# mw menu state\n")
	b.WriteString(pattern + "\n")
	_, err = file.WriteString(b.String())
	return err
}
