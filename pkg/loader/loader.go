// Package loader reads menu definitions from disk, resolves named submenu
// references and keeps the per-project state directory out of git.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/menuwork/pkg/model"
)

// FormatError is returned for files whose extension is not a known format.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return "unsupported menu format: " + e.Path + " (expected .yaml, .yml or .json)"
}

// Decode parses data in the format implied by name's extension.
func Decode(name string, data []byte) (*model.MenuSpec, error) {
	var spec model.MenuSpec
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return nil, &FormatError{Path: name}
	}
	if spec.Name == "" {
		spec.Name = menuName(name)
	}
	return &spec, nil
}

// menuName derives "editor" from "path/editor.menu.yaml".
func menuName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".menu")
}

// LoadFile reads, resolves and validates a definition file.
func LoadFile(path string) (*model.MenuSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu file: %w", err)
	}
	spec, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu %s: %w", path, err)
	}
	if err := Resolve(spec); err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return spec, nil
}

// LoadAll loads every path concurrently. The result keeps the input order.
// The first failure cancels the rest.
func LoadAll(ctx context.Context, paths []string) ([]*model.MenuSpec, error) {
	specs := make([]*model.MenuSpec, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spec, err := LoadFile(path)
			if err != nil {
				return err
			}
			specs[i] = spec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return specs, nil
}

// SortByName orders specs by menu name for stable listings.
func SortByName(specs []*model.MenuSpec) {
	slices.SortFunc(specs, func(a, b *model.MenuSpec) int {
		return strings.Compare(a.Name, b.Name)
	})
}
