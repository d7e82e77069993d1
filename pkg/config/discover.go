package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// menuSuffixes are the file name endings recognized as menu definitions.
var menuSuffixes = []string{".menu.yaml", ".menu.yml", ".menu.json"}

// IsMenuFile reports whether name looks like a menu definition.
func IsMenuFile(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range menuSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// DiscoverMenus scans the configured paths, relative to base, for menu
// definition files. The result is sorted and free of duplicates.
func DiscoverMenus(cfg Config, base string) []string {
	maxDepth := cfg.Discovery.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}
	paths := cfg.Discovery.ScanPaths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var result []string
	for _, p := range paths {
		p = expandHome(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		result = append(result, scanForMenus(p, maxDepth)...)
	}
	slices.Sort(result)
	return slices.Compact(result)
}

// scanForMenus walks root up to maxDepth levels deep, skipping hidden
// directories, and collects menu definition files.
func scanForMenus(root string, maxDepth int) []string {
	var results []string
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
			if depth > maxDepth {
				return filepath.SkipDir
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsMenuFile(d.Name()) {
			results = append(results, path)
		}
		return nil
	})
	return results
}

// ProjectRoot walks up from dir looking for a .mw/ directory, stopping at
// the home directory.
func ProjectRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()
	for {
		if info, err := os.Stat(filepath.Join(dir, Dir)); err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}
