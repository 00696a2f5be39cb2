// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/pxforge/px"
	"github.com/pxforge/px/cache"
	"github.com/pxforge/px/internal/parallel"
	"github.com/pxforge/px/registry"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the worker count for level fan-out. Zero or below
// selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithShader selects the shader profile for the whole build, overriding
// any per-target shader.
func WithShader(name string) Option {
	return func(p *Pipeline) { p.shader = name }
}

// WithCache attaches a result cache keyed by content hash. Builds sharing
// a cache skip re-rendering assets whose definitions, transitive
// dependencies, and palette profile are all unchanged.
func WithCache(c *cache.Sharded[uint64, *Result]) Option {
	return func(p *Pipeline) { p.cache = c }
}

// Pipeline renders every rasterizable asset in a registry. One pipeline
// serves many Run and RenderTarget calls; the registry it wraps is
// immutable.
type Pipeline struct {
	reg     *registry.Registry
	workers int
	shader  string
	cache   *cache.Sharded[uint64, *Result]
}

// NewPipeline creates a pipeline over a built registry.
func NewPipeline(reg *registry.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{reg: reg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build is the outcome of one pipeline run: rendered results in
// deterministic build order plus everything diagnosed along the way.
type Build struct {
	results map[string]*Result
	order   []string
	diags   px.DiagList
}

// Result returns one rendered asset by name.
func (b *Build) Result(name string) (*Result, bool) {
	r, ok := b.results[name]
	return r, ok
}

// Results returns all rendered assets in build order.
func (b *Build) Results() []*Result {
	out := make([]*Result, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.results[name])
	}
	return out
}

// Diags returns all diagnostics recorded during the run.
func (b *Build) Diags() []px.Diag {
	return b.diags.All()
}

// HasErrors reports whether any diagnostic is an error.
func (b *Build) HasErrors() bool {
	return b.diags.HasErrors()
}

// Run renders all shapes, prefabs, and maps under the pipeline's shader
// profile. The context is checked between dependency levels; cancellation
// abandons the remaining levels and returns the context error.
func (p *Pipeline) Run(ctx context.Context) (*Build, error) {
	return p.run(ctx, p.shader)
}

func (p *Pipeline) run(ctx context.Context, shaderName string) (*Build, error) {
	start := time.Now()
	build := &Build{results: make(map[string]*Result)}

	profile := p.resolveProfile(shaderName, &build.diags)
	build.diags.Merge(diagListOf(p.reg.Diags()))
	renderer := NewShapeRenderer(p.reg, profile.palette, profile.variant)

	pool := parallel.NewWorkerPool(p.workers)
	defer pool.Close()

	// Jobs within a level only read results written by earlier levels, so
	// the results map needs no lock: writes happen between barriers.
	type slot struct {
		id    registry.ID
		res   *Result
		diags px.DiagList
	}
	for _, level := range p.reg.Levels() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var slots []*slot
		for _, id := range level {
			switch id.Kind {
			case registry.KindShape, registry.KindPrefab, registry.KindMap:
				slots = append(slots, &slot{id: id})
			}
		}

		jobs := make([]func(), len(slots))
		for i := range slots {
			s := slots[i]
			jobs[i] = func() {
				s.res = p.renderAsset(s.id, renderer, profile, build, &s.diags)
			}
		}
		pool.ExecuteAll(jobs)

		for _, s := range slots {
			build.diags.Merge(&s.diags)
			if s.res != nil {
				build.results[s.id.Name] = s.res
				build.order = append(build.order, s.id.Name)
			}
		}
	}

	px.Logger().Info("build finished",
		slog.Int("assets", len(build.order)),
		slog.Int("diags", build.diags.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return build, nil
}

// renderAsset renders one shape, prefab, or map, consulting the cache
// first. Cached results skip rendering entirely; their original
// diagnostics were reported by the build that produced them.
func (p *Pipeline) renderAsset(id registry.ID, renderer *ShapeRenderer, profile profile, build *Build, diags *px.DiagList) *Result {
	var key uint64
	if p.cache != nil {
		if h, ok := p.reg.Hash(id); ok {
			key = combineHash(h, profile.hash)
			if res, ok := p.cache.Get(key); ok {
				return res
			}
		}
	}

	lookup := func(name string) (*Result, bool) {
		r, ok := build.results[name]
		return r, ok
	}

	var res *Result
	switch id.Kind {
	case registry.KindShape:
		shape, ok := p.reg.Shape(id.Name)
		if !ok {
			return nil
		}
		res = &Result{
			Name:   shape.Name,
			Tags:   shape.Tags,
			Pixmap: renderer.Render(shape, diags),
		}

	case registry.KindPrefab:
		prefab, ok := p.reg.Prefab(id.Name)
		if !ok {
			return nil
		}
		res = composeLayout(prefab.Name, prefab.Source, prefab.Tags, prefab, lookup, false, diags)

	case registry.KindMap:
		m, ok := p.reg.Map(id.Name)
		if !ok {
			return nil
		}
		res = composeLayout(m.Name, m.Source, m.Tags, m, lookup, true, diags)

	default:
		return nil
	}

	if p.cache != nil && key != 0 {
		p.cache.Set(key, res)
	}
	return res
}

// TargetOutput is a build post-processed for one output profile.
type TargetOutput struct {
	// Target is the profile that produced this output.
	Target *px.Target

	// Sprites are the processed results in build order: effects applied,
	// scaled, and palette-constrained per the target.
	Sprites []*Result

	// Sheet is the packed atlas, nil when the target does not pack.
	Sheet *Sheet

	// Meta carries instance metadata for every map in the build.
	Meta []*px.MapMeta

	diags px.DiagList
}

// Diags returns all diagnostics from the underlying build and the target
// post-processing.
func (o *TargetOutput) Diags() []px.Diag {
	return o.diags.All()
}

// RenderTarget runs a build for the named target: the target's shader
// (unless the pipeline's WithShader overrides it), then effects, integer
// scaling, palette constraints, and sheet packing per the target's
// settings. Registered targets shadow the builtin profiles of the same
// name.
func (p *Pipeline) RenderTarget(ctx context.Context, name string) (*TargetOutput, error) {
	target, ok := p.reg.Target(name)
	if !ok {
		for _, bt := range px.BuiltinTargets() {
			if bt.Name == name {
				target, ok = bt, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("px: unknown target %q", name)
	}

	shaderName := p.shader
	if shaderName == "" {
		shaderName = target.Shader
	}

	build, err := p.run(ctx, shaderName)
	if err != nil {
		return nil, err
	}

	out := &TargetOutput{Target: target}
	out.diags.Merge(&build.diags)

	var effects []px.Effect
	if shaderName != "" {
		if shader, ok := p.reg.Shader(shaderName); ok {
			effects = shader.Effects
		}
	}

	var indexed *px.Palette
	if target.Palette == px.PaletteIndexed {
		indexed = p.profilePalette(shaderName)
	}

	scale := target.EffectiveScale()
	for _, res := range build.Results() {
		pm := ApplyEffects(res.Pixmap, effects, res.Name, &out.diags)
		if indexed != nil {
			pm = quantize(pm, indexed)
		}
		if scale > 1 {
			pm = pm.Scale(scale)
		}
		sprite := &Result{Name: res.Name, Tags: res.Tags, Pixmap: pm}
		if res.Meta != nil {
			sprite.Meta = scaleMeta(res.Meta, scale)
			out.Meta = append(out.Meta, sprite.Meta)
		}
		out.Sprites = append(out.Sprites, sprite)
	}

	switch target.Sheet.Mode {
	case px.SheetAuto:
		out.Sheet = PackSheet(out.Sprites, target.Padding*scale)
	case px.SheetFixed:
		out.Sheet = PackFixed(out.Sprites, target.Sheet.Width, target.Sheet.Height,
			target.TileSize*scale, &out.diags)
	}

	return out, nil
}

// profile is the color resolution context for one build.
type profile struct {
	palette *px.Palette
	variant string
	hash    uint64
}

// resolveProfile maps a shader name to a palette profile. Every failure
// degrades to the compiled-in default palette with a warning, never an
// aborted build.
func (p *Pipeline) resolveProfile(shaderName string, diags *px.DiagList) profile {
	pr := profile{palette: px.DefaultPalette()}

	if shaderName != "" {
		shader, ok := p.reg.Shader(shaderName)
		if !ok {
			diags.Add(px.Diag{
				Severity: px.SeverityWarning,
				Code:     px.CodeMissingAsset,
				Message:  "shader " + shaderName + " is not defined",
			})
		} else {
			pr.variant = shader.Variant
			if pal, ok := p.reg.Palette(shader.Palette); ok {
				pr.palette = pal
			} else if shader.Palette != "" {
				diags.Add(px.Diag{
					Severity: px.SeverityWarning,
					Code:     px.CodeMissingPalette,
					Message:  "palette " + shader.Palette + " is not available",
					Asset:    shader.Name,
				})
			}
			if pr.variant != "" && !pr.palette.HasVariant(pr.variant) {
				diags.Add(px.Diag{
					Severity: px.SeverityWarning,
					Code:     px.CodeMissingAsset,
					Message:  "variant " + pr.variant + " is not defined in palette " + pr.palette.Name,
					Asset:    shader.Name,
				})
			}
		}
	}

	pr.hash = hashProfile(pr.palette, pr.variant)
	return pr
}

func (p *Pipeline) profilePalette(shaderName string) *px.Palette {
	var noise px.DiagList
	return p.resolveProfile(shaderName, &noise).palette
}

// hashProfile folds the palette contents and active variant into one
// value, so cache keys change when the color profile does even though
// asset definitions did not.
func hashProfile(pal *px.Palette, variant string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(pal.Name))
	h.Write([]byte{0})
	h.Write([]byte(variant))
	h.Write([]byte{0})
	for _, name := range pal.ColorNames() {
		c, _ := pal.GetWithVariant(name, variant)
		h.Write([]byte(name))
		h.Write([]byte(c.String()))
	}
	return h.Sum64()
}

func combineHash(a, b uint64) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], a)
	binary.LittleEndian.PutUint64(buf[8:], b)
	h.Write(buf[:])
	return h.Sum64()
}

// quantize snaps every opaque pixel to the nearest palette base color by
// squared RGB distance. Ties resolve to the first name in sorted order,
// keeping output deterministic.
func quantize(pm *px.Pixmap, pal *px.Palette) *px.Pixmap {
	names := pal.ColorNames()
	if len(names) == 0 {
		return pm
	}
	colors := make([]px.RGBA, len(names))
	for i, name := range names {
		colors[i], _ = pal.Get(name)
	}

	out := pm.Clone()
	eachOpaque(out, func(x, y int, c px.RGBA) px.RGBA {
		best := colors[0]
		bestDist := colorDist(c, best)
		for _, cand := range colors[1:] {
			if d := colorDist(c, cand); d < bestDist {
				best, bestDist = cand, d
			}
		}
		best.A = c.A
		return best
	})
	return out
}

func colorDist(a, b px.RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

func scaleMeta(meta *px.MapMeta, scale int) *px.MapMeta {
	if scale <= 1 {
		return meta
	}
	out := &px.MapMeta{
		Name:     meta.Name,
		Size:     [2]int{meta.Size[0] * scale, meta.Size[1] * scale},
		Grid:     meta.Grid,
		CellSize: [2]int{meta.CellSize[0] * scale, meta.CellSize[1] * scale},
	}
	for _, inst := range meta.Instances {
		scaled := px.Instance{Name: inst.Name, Tags: inst.Tags}
		for _, pos := range inst.Positions {
			scaled.Positions = append(scaled.Positions, [2]int{pos[0] * scale, pos[1] * scale})
		}
		out.Instances = append(out.Instances, scaled)
	}
	return out
}

func diagListOf(diags []px.Diag) *px.DiagList {
	var l px.DiagList
	for _, d := range diags {
		l.Add(d)
	}
	return &l
}
