// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"errors"
	"log/slog"

	"github.com/pxforge/px"
)

// Builder accumulates asset definitions of every kind. Registration order
// is preserved so the resulting build order, levels and diagnostics are
// deterministic for a given input sequence.
type Builder struct {
	palettes map[string]*px.PaletteBuilder
	stamps   map[string]*px.Stamp
	brushes  map[string]*px.Brush
	shaders  map[string]*px.Shader
	shapes   map[string]*px.Shape
	prefabs  map[string]*px.Prefab
	maps     map[string]*px.Map
	targets  map[string]*px.Target

	order []ID
}

// NewBuilder creates an empty registry builder.
func NewBuilder() *Builder {
	return &Builder{
		palettes: make(map[string]*px.PaletteBuilder),
		stamps:   make(map[string]*px.Stamp),
		brushes:  make(map[string]*px.Brush),
		shaders:  make(map[string]*px.Shader),
		shapes:   make(map[string]*px.Shape),
		prefabs:  make(map[string]*px.Prefab),
		maps:     make(map[string]*px.Map),
		targets:  make(map[string]*px.Target),
	}
}

func (b *Builder) track(id ID, fresh bool) {
	if fresh {
		b.order = append(b.order, id)
	}
}

// AddPalette registers a palette definition. Palettes arrive unresolved;
// inheritance and color expressions are resolved during Build, once parent
// ordering is known.
func (b *Builder) AddPalette(p *px.PaletteBuilder) *Builder {
	_, exists := b.palettes[p.Name()]
	b.palettes[p.Name()] = p
	b.track(PaletteID(p.Name()), !exists)
	return b
}

// AddStamp registers a stamp.
func (b *Builder) AddStamp(s *px.Stamp) *Builder {
	_, exists := b.stamps[s.Name]
	b.stamps[s.Name] = s
	b.track(StampID(s.Name), !exists)
	return b
}

// AddBrush registers a brush.
func (b *Builder) AddBrush(br *px.Brush) *Builder {
	_, exists := b.brushes[br.Name]
	b.brushes[br.Name] = br
	b.track(BrushID(br.Name), !exists)
	return b
}

// AddShader registers a shader.
func (b *Builder) AddShader(s *px.Shader) *Builder {
	_, exists := b.shaders[s.Name]
	b.shaders[s.Name] = s
	b.track(ShaderID(s.Name), !exists)
	return b
}

// AddShape registers a shape.
func (b *Builder) AddShape(s *px.Shape) *Builder {
	_, exists := b.shapes[s.Name]
	b.shapes[s.Name] = s
	b.track(ShapeID(s.Name), !exists)
	return b
}

// AddPrefab registers a prefab.
func (b *Builder) AddPrefab(p *px.Prefab) *Builder {
	_, exists := b.prefabs[p.Name]
	b.prefabs[p.Name] = p
	b.track(PrefabID(p.Name), !exists)
	return b
}

// AddMap registers a map.
func (b *Builder) AddMap(m *px.Map) *Builder {
	_, exists := b.maps[m.Name]
	b.maps[m.Name] = m
	b.track(MapID(m.Name), !exists)
	return b
}

// AddTarget registers a target.
func (b *Builder) AddTarget(t *px.Target) *Builder {
	_, exists := b.targets[t.Name]
	b.targets[t.Name] = t
	b.track(TargetID(t.Name), !exists)
	return b
}

// Build validates all cross-references and produces an immutable Registry.
//
// Every "X refers to Y by name" relationship becomes a graph edge,
// regardless of asset kind. A reference cycle anywhere is fatal and
// returned as a CycleError. Missing references are NOT errors here; the
// render layer substitutes placeholders for them. Palette color cycles
// are scoped to the offending palette: the palette is dropped, an error
// diagnostic is recorded, and the rest of the registry builds normally.
func (b *Builder) Build() (*Registry, error) {
	graph := NewGraph()
	for _, id := range b.order {
		graph.Register(id)
	}

	// Edges. Only references to registered assets become edges; a dangling
	// name cannot participate in a cycle.
	for _, id := range b.order {
		switch id.Kind {
		case KindPalette:
			p := b.palettes[id.Name]
			if parent := p.Parent(); parent != "" {
				if _, ok := b.palettes[parent]; ok {
					graph.AddDep(id, PaletteID(parent))
				}
			}

		case KindShader:
			s := b.shaders[id.Name]
			if _, ok := b.palettes[s.Palette]; ok {
				graph.AddDep(id, PaletteID(s.Palette))
			}
			if s.Inherits != "" {
				if _, ok := b.shaders[s.Inherits]; ok {
					graph.AddDep(id, ShaderID(s.Inherits))
				}
			}

		case KindShape:
			s := b.shapes[id.Name]
			for _, entry := range s.LegendEntries() {
				switch entry.Role {
				case px.LegendStamp:
					if _, ok := b.stamps[entry.Ref]; ok {
						graph.AddDep(id, StampID(entry.Ref))
					}
				case px.LegendBrush, px.LegendFill:
					if _, ok := b.brushes[entry.Ref]; ok {
						graph.AddDep(id, BrushID(entry.Ref))
					}
				}
			}

		case KindPrefab:
			p := b.prefabs[id.Name]
			for _, ref := range p.ReferencedNames() {
				b.addCompositionDep(graph, id, ref)
			}

		case KindMap:
			m := b.maps[id.Name]
			for _, ref := range m.ReferencedNames() {
				b.addCompositionDep(graph, id, ref)
			}

		case KindTarget:
			t := b.targets[id.Name]
			if t.Shader != "" {
				if _, ok := b.shaders[t.Shader]; ok {
					graph.AddDep(id, ShaderID(t.Shader))
				}
			}
		}
	}

	order, err := graph.TopoSort()
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		palettes: make(map[string]*px.Palette, len(b.palettes)),
		stamps:   b.stamps,
		brushes:  b.brushes,
		shaders:  make(map[string]*px.Shader, len(b.shaders)),
		shapes:   b.shapes,
		prefabs:  b.prefabs,
		maps:     b.maps,
		targets:  b.targets,
		graph:    graph,
		order:    order,
		levels:   graph.Levels(order),
		hashes:   make(map[ID]uint64, len(order)),
	}

	// Resolve palettes and shader inheritance in dependency order so a
	// parent is always materialized before its children need it.
	for _, id := range order {
		switch id.Kind {
		case KindPalette:
			pb := b.palettes[id.Name]
			var parent *px.Palette
			if name := pb.Parent(); name != "" {
				parent = reg.palettes[name]
				if parent == nil {
					if _, declared := b.palettes[name]; !declared {
						reg.diags.Add(px.Diag{
							Severity: px.SeverityWarning,
							Code:     px.CodeMissingAsset,
							Message:  "parent palette " + name + " is not registered",
							Asset:    id.String(),
						})
					}
					// A declared-but-dropped parent (its colors cycled)
					// degrades the child to no inheritance.
				}
			}
			p, err := pb.Build(parent)
			if err != nil {
				var cycleErr *px.ColorCycleError
				if errors.As(err, &cycleErr) {
					reg.diags.Add(px.Diag{
						Severity: px.SeverityError,
						Code:     px.CodeCycle,
						Message:  err.Error(),
						Asset:    id.String(),
					})
					px.Logger().Warn("palette dropped: color cycle",
						slog.String("palette", id.Name))
					continue
				}
				reg.diags.Add(px.Diag{
					Severity: px.SeverityError,
					Code:     px.CodeMissingColor,
					Message:  err.Error(),
					Asset:    id.String(),
				})
				continue
			}
			reg.palettes[id.Name] = p

		case KindShader:
			s := b.shaders[id.Name].Clone()
			if s.Inherits != "" {
				if parent, ok := reg.shaders[s.Inherits]; ok {
					s.MergeFrom(parent)
				}
			}
			reg.shaders[id.Name] = s
		}
	}

	reg.computeHashes(b)

	px.Logger().Info("registry built",
		slog.Int("assets", graph.Len()),
		slog.Int("levels", len(reg.levels)))

	return reg, nil
}

// addCompositionDep wires a prefab/map reference, which may name a shape
// or a prefab. Shapes shadow prefabs when both exist under one name.
func (b *Builder) addCompositionDep(graph *Graph, from ID, ref string) {
	if _, ok := b.shapes[ref]; ok {
		graph.AddDep(from, ShapeID(ref))
		return
	}
	if _, ok := b.prefabs[ref]; ok {
		graph.AddDep(from, PrefabID(ref))
	}
}

// Registry is the immutable, build-once collection of all assets plus the
// derived dependency graph. All methods are safe for concurrent use.
type Registry struct {
	palettes map[string]*px.Palette
	stamps   map[string]*px.Stamp
	brushes  map[string]*px.Brush
	shaders  map[string]*px.Shader
	shapes   map[string]*px.Shape
	prefabs  map[string]*px.Prefab
	maps     map[string]*px.Map
	targets  map[string]*px.Target

	graph  *Graph
	order  []ID
	levels [][]ID
	hashes map[ID]uint64
	diags  px.DiagList
}

// Palette returns a resolved palette by name.
func (r *Registry) Palette(name string) (*px.Palette, bool) {
	p, ok := r.palettes[name]
	return p, ok
}

// Stamp returns a stamp by name.
func (r *Registry) Stamp(name string) (*px.Stamp, bool) {
	s, ok := r.stamps[name]
	return s, ok
}

// StampByGlyph returns the registered stamp whose self-declared default
// glyph matches, scanning in build order for determinism.
func (r *Registry) StampByGlyph(glyph rune) (*px.Stamp, bool) {
	for _, id := range r.order {
		if id.Kind != KindStamp {
			continue
		}
		if s := r.stamps[id.Name]; s.Glyph == glyph {
			return s, true
		}
	}
	return nil, false
}

// Brush returns a brush by name.
func (r *Registry) Brush(name string) (*px.Brush, bool) {
	b, ok := r.brushes[name]
	return b, ok
}

// Shader returns a shader by name, with inheritance already merged.
func (r *Registry) Shader(name string) (*px.Shader, bool) {
	s, ok := r.shaders[name]
	return s, ok
}

// Shape returns a shape by name.
func (r *Registry) Shape(name string) (*px.Shape, bool) {
	s, ok := r.shapes[name]
	return s, ok
}

// Prefab returns a prefab by name.
func (r *Registry) Prefab(name string) (*px.Prefab, bool) {
	p, ok := r.prefabs[name]
	return p, ok
}

// Map returns a map by name.
func (r *Registry) Map(name string) (*px.Map, bool) {
	m, ok := r.maps[name]
	return m, ok
}

// Target returns a target by name.
func (r *Registry) Target(name string) (*px.Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// Graph returns the dependency graph.
func (r *Registry) Graph() *Graph {
	return r.graph
}

// BuildOrder returns all assets in topological order, dependencies first.
func (r *Registry) BuildOrder() []ID {
	return r.order
}

// Levels returns the assets partitioned by dependency depth. Assets within
// one level have no dependencies on each other.
func (r *Registry) Levels() [][]ID {
	return r.levels
}

// Hash returns the content hash of an asset: its own definition combined
// with the hashes of everything it transitively references. Any upstream
// definition change changes every downstream hash, which is the cache
// invalidation contract.
func (r *Registry) Hash(id ID) (uint64, bool) {
	h, ok := r.hashes[id]
	return h, ok
}

// Diags returns diagnostics recorded while resolving definitions
// (dropped palettes, missing parents).
func (r *Registry) Diags() []px.Diag {
	return r.diags.All()
}

// Len returns the total number of registered assets.
func (r *Registry) Len() int {
	return len(r.order)
}
