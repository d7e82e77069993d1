package loader

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/vanderheijden86/menuwork/pkg/model"
)

// CycleError reports named menus that reference each other.
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		parts[i] = strings.Join(c, " -> ")
	}
	return "submenu reference cycle: " + strings.Join(parts, "; ")
}

// Resolve inlines every ref in spec, in place. It fails with *CycleError
// when named menus reference each other in a loop.
func Resolve(spec *model.MenuSpec) error {
	if err := checkCycles(spec); err != nil {
		return err
	}
	var inline func(items []model.ItemSpec) ([]model.ItemSpec, error)
	inline = func(items []model.ItemSpec) ([]model.ItemSpec, error) {
		out := make([]model.ItemSpec, len(items))
		for i, it := range items {
			it = it.Clone()
			if it.Ref != "" {
				sub, ok := spec.Menus[it.Ref]
				if !ok {
					return nil, fmt.Errorf("unknown ref %q on %q", it.Ref, it.Label)
				}
				it.Items = sub.Items
				it.Ref = ""
			}
			if len(it.Items) > 0 {
				var err error
				if it.Items, err = inline(it.Items); err != nil {
					return nil, err
				}
			}
			out[i] = it
		}
		return out, nil
	}
	items, err := inline(spec.Items)
	if err != nil {
		return err
	}
	spec.Items = items
	return nil
}

// checkCycles builds the named-menu reference graph and asks for a
// topological order, which only exists without cycles.
func checkCycles(spec *model.MenuSpec) error {
	refs := spec.Refs()
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	slices.Sort(names)
	ids := make(map[string]int64, len(names))
	for i, name := range names {
		ids[name] = int64(i)
	}

	g := simple.NewDirectedGraph()
	var self [][]string
	for _, name := range names {
		g.AddNode(simple.Node(ids[name]))
	}
	for _, from := range names {
		for _, to := range refs[from] {
			toID, ok := ids[to]
			if !ok {
				continue
			}
			if to == from {
				self = append(self, []string{from, from})
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(ids[from]), simple.Node(toID)))
		}
	}

	cycles := self
	if _, err := topo.Sort(g); err != nil {
		var unorderable topo.Unorderable
		if !errors.As(err, &unorderable) {
			return err
		}
		for _, component := range unorderable {
			cycle := make([]string, len(component))
			for i, n := range component {
				cycle[i] = names[n.ID()]
			}
			slices.Sort(cycle)
			cycles = append(cycles, cycle)
		}
	}
	if len(cycles) > 0 {
		return &CycleError{Cycles: cycles}
	}
	return nil
}
