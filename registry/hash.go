// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"strconv"

	"github.com/pxforge/px"
)

// computeHashes derives a content hash for every asset in topological
// order: the asset's own definition folded with the combined hashes of its
// dependencies. Dependencies are hashed before dependents, so one pass
// over the build order suffices.
func (r *Registry) computeHashes(b *Builder) {
	for _, id := range r.order {
		h := fnv.New64a()
		h.Write([]byte(id.String()))
		h.Write([]byte{0})
		r.writeDefinition(h.Write, b, id)
		for _, dep := range r.graph.DependenciesOf(id) {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], r.hashes[dep])
			h.Write(buf[:])
		}
		r.hashes[id] = h.Sum64()
	}
}

// writeDefinition feeds a stable serialization of one asset's own
// definition into the hash. Ordering is always explicit (declaration or
// sorted) so the bytes never depend on map iteration.
func (r *Registry) writeDefinition(w func([]byte) (int, error), b *Builder, id ID) {
	str := func(parts ...string) {
		for _, s := range parts {
			w([]byte(s))
			w([]byte{0})
		}
	}

	switch id.Kind {
	case KindPalette:
		p, ok := r.palettes[id.Name]
		if !ok {
			// Dropped palette (color cycle): name-only hash.
			return
		}
		str(p.Inherits)
		for _, name := range p.ColorNames() {
			c, _ := p.Get(name)
			str(name, c.String())
		}
		for _, variant := range p.VariantNames() {
			str("@" + variant)
			for _, name := range p.ColorNames() {
				if c, ok := p.GetWithVariant(name, variant); ok {
					str(name, c.String())
				}
			}
		}

	case KindStamp:
		s := b.stamps[id.Name]
		str(string(s.Glyph))
		for y := 0; y < s.Height(); y++ {
			for x := 0; x < s.Width(); x++ {
				str(string(s.Get(x, y).Rune()))
			}
			str("/")
		}

	case KindBrush:
		br := b.brushes[id.Name]
		for y := 0; y < br.Height(); y++ {
			for x := 0; x < br.Width(); x++ {
				t, _ := br.Get(x, y)
				str(string(t))
			}
			str("/")
		}

	case KindShader:
		s := r.shaders[id.Name]
		str(s.Palette, s.Variant)
		for _, e := range s.Effects {
			str(string(e.Kind),
				strconv.FormatFloat(e.Amount, 'g', -1, 64),
				strconv.Itoa(e.Gap))
		}

	case KindShape:
		s := b.shapes[id.Name]
		writeGrid(str, s.Width(), s.Height(), s.Get)
		for _, sym := range sortedSymbols(s.LegendEntries()) {
			e, _ := s.Legend(sym)
			str(string(sym), strconv.Itoa(int(e.Role)), e.Ref)
			for _, t := range sortedRunes(e.Bindings) {
				str(string(t), e.Bindings[t])
			}
		}

	case KindPrefab:
		p := b.prefabs[id.Name]
		writeGrid(str, p.Width(), p.Height(), p.Get)
		writeCompositionLegend(str, p.Cells, p.Legend)

	case KindMap:
		m := b.maps[id.Name]
		writeGrid(str, m.Width(), m.Height(), m.Get)
		writeCompositionLegend(str, m.Cells, m.Legend)

	case KindTarget:
		t := b.targets[id.Name]
		str(t.Name, t.Format, t.Shader,
			strconv.Itoa(t.Scale),
			strconv.Itoa(int(t.Sheet.Mode)),
			strconv.Itoa(t.Sheet.Width),
			strconv.Itoa(t.Sheet.Height),
			strconv.Itoa(t.Padding),
			strconv.Itoa(int(t.Palette)),
			strconv.Itoa(t.TileSize))
	}
}

func writeGrid(str func(...string), w, h int, get func(x, y int) rune) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			str(string(get(x, y)))
		}
		str("/")
	}
}

// writeCompositionLegend serializes a prefab/map legend restricted to
// symbols the grid actually uses, in sorted symbol order.
func writeCompositionLegend(
	str func(...string),
	cells func(func(x, y int, sym rune)),
	legend func(rune) (string, bool),
) {
	used := make(map[rune]string)
	cells(func(_, _ int, sym rune) {
		if name, ok := legend(sym); ok {
			used[sym] = name
		}
	})
	for _, sym := range sortedRunes(used) {
		str(string(sym), used[sym])
	}
}

func sortedSymbols(legend map[rune]px.LegendEntry) []rune {
	syms := make([]rune, 0, len(legend))
	for sym := range legend {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

func sortedRunes[V any](m map[rune]V) []rune {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
