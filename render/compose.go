// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sort"

	"github.com/pxforge/px"
)

// layout is the common surface of prefabs and maps: a symbol grid plus a
// symbol-to-asset legend.
type layout interface {
	Width() int
	Height() int
	Get(x, y int) rune
	Legend(sym rune) (string, bool)
}

// composeLayout renders a prefab or map by placing already-rendered child
// results on a uniform cell grid.
//
// The cell size is the maximum width and height over all referenced
// children, so small children leave transparent slack in their cells;
// every child anchors at its cell's top-left. The reserved name "empty"
// and blank symbols leave a cell fully transparent. A reference to a
// missing or failed child paints the cell magenta and warns once per name.
//
// When withMeta is set (maps), the result carries per-name placement
// positions in pixel coordinates.
func composeLayout(
	name, source string,
	tags []string,
	l layout,
	lookup func(string) (*Result, bool),
	withMeta bool,
	diags *px.DiagList,
) *Result {
	gw, gh := l.Width(), l.Height()
	res := &Result{Name: name, Tags: tags}
	if gw == 0 || gh == 0 {
		res.Pixmap = px.NewPixmap(0, 0)
		return res
	}

	// Pass 1: cell geometry and missing-reference reporting.
	cellW, cellH := 1, 1
	warned := make(map[string]bool)
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			childName, ok := cellRef(l, x, y)
			if !ok {
				continue
			}
			child, found := lookup(childName)
			if !found || child.Pixmap == nil {
				if !warned[childName] {
					warned[childName] = true
					diags.Add(px.Diag{
						Severity: px.SeverityWarning,
						Code:     px.CodeMissingAsset,
						Message:  "referenced asset " + childName + " was not rendered",
						Asset:    name,
						Source:   source,
					})
				}
				continue
			}
			if w := child.Pixmap.Width(); w > cellW {
				cellW = w
			}
			if h := child.Pixmap.Height(); h > cellH {
				cellH = h
			}
		}
	}

	// Pass 2: placement.
	pm := px.NewPixmap(gw*cellW, gh*cellH)
	positions := make(map[string][][2]int)
	childTags := make(map[string][]string)
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			childName, ok := cellRef(l, x, y)
			if !ok {
				if sym := l.Get(x, y); sym != 0 && sym != ' ' {
					if _, mapped := l.Legend(sym); !mapped {
						diags.Add(px.Diag{
							Severity: px.SeverityWarning,
							Code:     px.CodeUnknownSymbol,
							Message:  "symbol has no legend entry",
							Asset:    name,
							Symbol:   sym,
							Source:   source,
						})
					}
				}
				continue
			}
			ox, oy := x*cellW, y*cellH
			child, found := lookup(childName)
			if !found || child.Pixmap == nil {
				fillRect(pm, ox, oy, cellW, cellH, px.Magenta)
				continue
			}
			pm.Blit(child.Pixmap, ox, oy)
			if withMeta {
				positions[childName] = append(positions[childName], [2]int{ox, oy})
				childTags[childName] = child.Tags
			}
		}
	}
	res.Pixmap = pm

	if withMeta {
		res.Meta = buildMeta(name, gw, gh, cellW, cellH, positions, childTags)
	}
	return res
}

// cellRef resolves one grid cell to a child asset name. Blank symbols and
// the reserved empty reference report no child; unknown symbols are
// handled by the caller so a warning fires exactly where placement would.
func cellRef(l layout, x, y int) (string, bool) {
	sym := l.Get(x, y)
	if sym == 0 || sym == ' ' {
		return "", false
	}
	name, ok := l.Legend(sym)
	if !ok || name == px.EmptyRef {
		return "", false
	}
	return name, true
}

func fillRect(pm *px.Pixmap, x, y, w, h int, c px.RGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			pm.SetPixel(x+dx, y+dy, c)
		}
	}
}

func buildMeta(name string, gw, gh, cellW, cellH int, positions map[string][][2]int, tags map[string][]string) *px.MapMeta {
	names := make([]string, 0, len(positions))
	for n := range positions {
		names = append(names, n)
	}
	sort.Strings(names)

	instances := make([]px.Instance, 0, len(names))
	for _, n := range names {
		instances = append(instances, px.Instance{
			Name:      n,
			Tags:      tags[n],
			Positions: positions[n],
		})
	}
	return &px.MapMeta{
		Name:      name,
		Size:      [2]int{gw * cellW, gh * cellH},
		Grid:      [2]int{gw, gh},
		CellSize:  [2]int{cellW, cellH},
		Instances: instances,
	}
}
