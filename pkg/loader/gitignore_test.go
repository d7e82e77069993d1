package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCoversDir(t *testing.T) {
	tests := []struct {
		line    string
		matches bool
	}{
		{".mw", true},
		{".mw/", true},
		{".mw/*", true},
		{".mw/**", true},
		{".mw/**/*", true},
		{"/.mw/", true},

		{"", false},
		{".mw2", false},
		{".mw/state.db", false},
		{"mw/", false},
		{"*.mw", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := coversDir(tt.line, StateDir); got != tt.matches {
				t.Errorf("coversDir(%q) = %v, want %v", tt.line, got, tt.matches)
			}
		})
	}
}

func TestEnsureStateDirIgnored(t *testing.T) {
	tests := []struct {
		name     string
		existing *string
		want     string
	}{
		{"creates file", nil, "# mw menu state\n.mw/\n"},
		{"appends after content", ptr("node_modules/\n"), "node_modules/\n\n# mw menu state\n.mw/\n"},
		{"adds missing newline", ptr("bin"), "bin\n\n# mw menu state\n.mw/\n"},
		{"already present", ptr("/.mw\n"), "/.mw\n"},
		{"commented out", ptr("# .mw/\n"), "# .mw/\n\n# mw menu state\n.mw/\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ".gitignore")
			if tt.existing != nil {
				if err := os.WriteFile(path, []byte(*tt.existing), 0644); err != nil {
					t.Fatal(err)
				}
			}
			if err := EnsureStateDirIgnored(dir); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := EnsureStateDirIgnored(dir); err != nil {
				t.Fatalf("unexpected error on second call: %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, string(got))
			}
		})
	}
}

func ptr(s string) *string { return &s }
