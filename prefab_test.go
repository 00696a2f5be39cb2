// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import "testing"

func TestCompositionReferencedNames(t *testing.T) {
	p := NewPrefab("tower", nil, [][]rune{
		{'c', 'c'},
		{'w', '.'},
		{'w', 'w'},
	}, map[rune]string{
		'c': "cap",
		'w': "wall",
		'.': EmptyRef,
	})

	got := p.ReferencedNames()
	if len(got) != 2 || got[0] != "cap" || got[1] != "wall" {
		t.Errorf("ReferencedNames = %v, want [cap wall] in first-use order", got)
	}
}

func TestCompositionEmptyRefExcluded(t *testing.T) {
	// "empty" is reserved even when an asset with that literal name exists.
	m := NewMap("level", nil, [][]rune{
		{'e', 'w'},
	}, map[rune]string{
		'e': EmptyRef,
		'w': "wall",
	})
	got := m.ReferencedNames()
	if len(got) != 1 || got[0] != "wall" {
		t.Errorf("ReferencedNames = %v, want [wall]", got)
	}
}

func TestCompositionGetAndLegend(t *testing.T) {
	p := NewPrefab("p", nil, [][]rune{{'a'}}, map[rune]string{'a': "thing"})
	if p.Get(0, 0) != 'a' || p.Get(1, 0) != 0 || p.Get(0, -1) != 0 {
		t.Error("Get bounds handling wrong")
	}
	name, ok := p.Legend('a')
	if !ok || name != "thing" {
		t.Errorf("Legend(a) = %q, %v", name, ok)
	}
	if _, ok := p.Legend('z'); ok {
		t.Error("unexpected legend entry for 'z'")
	}
}

func TestNewMapNilLegend(t *testing.T) {
	m := NewMap("m", []string{"level"}, [][]rune{{'x'}}, nil)
	if m.IsEmpty() {
		t.Error("1x1 map reported empty")
	}
	if _, ok := m.Legend('x'); ok {
		t.Error("nil legend resolved a symbol")
	}
}
