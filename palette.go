// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import (
	"fmt"
	"sort"
	"strings"
)

// Palette is a named collection of resolved colors with optional variant
// overlays. Palettes are immutable once built; use PaletteBuilder to
// construct one from unresolved definitions.
type Palette struct {
	// Name is the palette's unique identifier.
	Name string

	// Inherits names the parent palette, if any. Inheritance itself is
	// resolved by the registry; the field is the declared reference.
	Inherits string

	colors   map[string]RGBA
	variants map[string]map[string]RGBA
}

// NewPalette creates an empty palette.
func NewPalette(name string) *Palette {
	return &Palette{
		Name:     name,
		colors:   make(map[string]RGBA),
		variants: make(map[string]map[string]RGBA),
	}
}

// DefaultPalette returns the compiled-in fallback palette.
func DefaultPalette() *Palette {
	p := NewPalette("default")
	p.colors["black"] = Black
	p.colors["white"] = White
	p.colors["edge"] = Black
	p.colors["fill"] = White
	return p
}

// Get returns a base color by name. A leading '$' sigil is accepted.
func (p *Palette) Get(name string) (RGBA, bool) {
	c, ok := p.colors[strings.TrimPrefix(name, "$")]
	return c, ok
}

// GetWithVariant returns a color with a variant overlay applied: the
// variant's override wins, the base mapping is the fallback. An unknown
// variant name behaves like no variant at all.
func (p *Palette) GetWithVariant(name, variant string) (RGBA, bool) {
	key := strings.TrimPrefix(name, "$")
	if v, ok := p.variants[variant]; ok {
		if c, ok := v[key]; ok {
			return c, true
		}
	}
	c, ok := p.colors[key]
	return c, ok
}

// HasVariant reports whether the palette defines the named variant.
func (p *Palette) HasVariant(name string) bool {
	_, ok := p.variants[name]
	return ok
}

// ColorNames returns all base color names, sorted.
func (p *Palette) ColorNames() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariantNames returns all variant names, sorted.
func (p *Palette) VariantNames() []string {
	names := make([]string, 0, len(p.variants))
	for name := range p.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of base colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// mergeFrom copies the parent's colors and variants without overwriting
// entries already present (child definitions win).
func (p *Palette) mergeFrom(parent *Palette) {
	for name, c := range parent.colors {
		if _, ok := p.colors[name]; !ok {
			p.colors[name] = c
		}
	}
	for variant, colors := range parent.variants {
		dst, ok := p.variants[variant]
		if !ok {
			dst = make(map[string]RGBA, len(colors))
			p.variants[variant] = dst
		}
		for name, c := range colors {
			if _, ok := dst[name]; !ok {
				dst[name] = c
			}
		}
	}
}

// ColorCycleError reports a circular color reference inside one palette.
// Path lists each color name once in discovery order, with the starting
// name repeated at the end to mark closure.
type ColorCycleError struct {
	Palette string
	Path    []string
}

func (e *ColorCycleError) Error() string {
	return fmt.Sprintf("px: palette %q: circular color reference: %s",
		e.Palette, strings.Join(e.Path, " -> "))
}

// PaletteBuilder accumulates unresolved color definitions and resolves them
// into an immutable Palette. Definitions keep declaration order so cycle
// paths and resolution are deterministic.
type PaletteBuilder struct {
	name     string
	inherits string
	defs     []colorDef
	variants map[string][]colorDef
	varOrder []string
}

type colorDef struct {
	name string
	expr Expr
	err  error // parse failure, surfaced at Build
}

// NewPaletteBuilder creates a builder for the named palette.
func NewPaletteBuilder(name string) *PaletteBuilder {
	return &PaletteBuilder{
		name:     name,
		variants: make(map[string][]colorDef),
	}
}

// Define adds a base color definition. The value may be a hex literal,
// a reference, or a function expression.
func (b *PaletteBuilder) Define(name, value string) *PaletteBuilder {
	expr, err := ParseExpr(value)
	b.defs = append(b.defs, colorDef{name: name, expr: expr, err: err})
	return b
}

// DefineVariant adds a color override under the named variant.
func (b *PaletteBuilder) DefineVariant(variant, name, value string) *PaletteBuilder {
	expr, err := ParseExpr(value)
	if _, ok := b.variants[variant]; !ok {
		b.varOrder = append(b.varOrder, variant)
	}
	b.variants[variant] = append(b.variants[variant], colorDef{name: name, expr: expr, err: err})
	return b
}

// Inherits sets the parent palette reference.
func (b *PaletteBuilder) Inherits(parent string) *PaletteBuilder {
	b.inherits = parent
	return b
}

// Parent returns the declared parent palette name, or "".
func (b *PaletteBuilder) Parent() string {
	return b.inherits
}

// Name returns the palette name.
func (b *PaletteBuilder) Name() string {
	return b.name
}

// Build resolves all definitions into a palette. If parent is non-nil its
// colors are inherited first (child entries override). Cyclic color
// references fail with a ColorCycleError naming the full path.
func (b *PaletteBuilder) Build(parent *Palette) (*Palette, error) {
	p := NewPalette(b.name)
	p.Inherits = b.inherits
	if parent != nil {
		p.mergeFrom(parent)
	}

	resolved, err := b.resolveDefs(b.defs, p, "")
	if err != nil {
		return nil, err
	}
	for _, d := range b.defs {
		if c, ok := resolved[d.name]; ok {
			p.colors[d.name] = c
		}
	}

	for _, variant := range b.varOrder {
		defs := b.variants[variant]
		resolved, err := b.resolveDefs(defs, p, variant)
		if err != nil {
			return nil, err
		}
		dst := make(map[string]RGBA, len(defs))
		for _, d := range defs {
			if c, ok := resolved[d.name]; ok {
				dst[d.name] = c
			}
		}
		p.variants[variant] = dst
	}

	return p, nil
}

// resolveDefs resolves one definition scope (base colors or one variant).
// References look at sibling definitions first, then the palette built so
// far (inherited and base colors).
func (b *PaletteBuilder) resolveDefs(defs []colorDef, existing *Palette, variant string) (map[string]RGBA, error) {
	byName := make(map[string]colorDef, len(defs))
	for _, d := range defs {
		byName[d.name] = d
	}

	resolved := make(map[string]RGBA, len(defs))
	for _, d := range defs {
		visited := newVisitSet()
		if _, err := b.resolveOne(d.name, byName, existing, resolved, visited, variant); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// visitSet tracks the active resolution path. Membership guards against
// infinite recursion; order reconstructs the cycle for the diagnostic.
type visitSet struct {
	active map[string]bool
	order  []string
}

func newVisitSet() *visitSet {
	return &visitSet{active: make(map[string]bool)}
}

func (v *visitSet) enter(name string) bool {
	if v.active[name] {
		return false
	}
	v.active[name] = true
	v.order = append(v.order, name)
	return true
}

func (v *visitSet) leave(name string) {
	delete(v.active, name)
	if n := len(v.order); n > 0 && v.order[n-1] == name {
		v.order = v.order[:n-1]
	}
}

// cyclePath returns the discovery-order path from the first occurrence of
// name through the end of the active chain, closed by repeating name.
func (v *visitSet) cyclePath(name string) []string {
	start := 0
	for i, n := range v.order {
		if n == name {
			start = i
			break
		}
	}
	path := append([]string{}, v.order[start:]...)
	return append(path, name)
}

func (b *PaletteBuilder) resolveOne(
	name string,
	defs map[string]colorDef,
	existing *Palette,
	resolved map[string]RGBA,
	visited *visitSet,
	variant string,
) (RGBA, error) {
	if c, ok := resolved[name]; ok {
		return c, nil
	}

	def, ok := defs[name]
	if !ok {
		// Not defined in this scope; fall back to the palette built so far
		// (inherited colors, or base colors when resolving a variant).
		if c, ok := existing.Get(name); ok {
			return c, nil
		}
		return RGBA{}, fmt.Errorf("px: palette %q: undefined color $%s", b.name, name)
	}
	if def.err != nil {
		return RGBA{}, fmt.Errorf("px: palette %q: color $%s: %w", b.name, name, def.err)
	}

	if !visited.enter(name) {
		// Inside a variant, a reference that closes on the active chain
		// means the base mapping: "sky: darken($sky, 60%)" derives the
		// override from the base color rather than cycling.
		if variant != "" {
			if c, ok := existing.Get(name); ok {
				return c, nil
			}
		}
		return RGBA{}, &ColorCycleError{Palette: b.name, Path: visited.cyclePath(name)}
	}
	defer visited.leave(name)

	// The lookup contract only knows found/not-found, so the first real
	// resolution error (a cycle, most importantly) is carried out-of-band
	// and takes precedence over the evaluator's generic undefined-color error.
	var lookupErr error
	eval := NewEvaluator(func(ref string) (RGBA, bool) {
		c, err := b.resolveOne(ref, defs, existing, resolved, visited, variant)
		if err != nil {
			if lookupErr == nil {
				lookupErr = err
			}
			return RGBA{}, false
		}
		return c, true
	})

	c, err := eval.Eval(def.expr)
	if err != nil {
		if lookupErr != nil {
			return RGBA{}, lookupErr
		}
		return RGBA{}, err
	}

	resolved[name] = c
	return c, nil
}
