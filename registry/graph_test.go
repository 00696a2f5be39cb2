// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"errors"
	"testing"
)

func TestGraphRegisterDedup(t *testing.T) {
	g := NewGraph()
	g.Register(StampID("a"))
	g.Register(StampID("a"))
	g.Register(BrushID("a"))

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
}

func TestGraphAddDepDedup(t *testing.T) {
	g := NewGraph()
	g.AddDep(ShapeID("s"), StampID("a"))
	g.AddDep(ShapeID("s"), StampID("a"))

	deps := g.DependenciesOf(ShapeID("s"))
	if len(deps) != 1 {
		t.Fatalf("DependenciesOf = %v, want one edge", deps)
	}
	rev := g.DependentsOf(StampID("a"))
	if len(rev) != 1 || rev[0] != ShapeID("s") {
		t.Fatalf("DependentsOf = %v, want [shape:s]", rev)
	}
}

func TestTopoSortLinear(t *testing.T) {
	g := NewGraph()
	// c depends on b depends on a, registered in reverse.
	g.Register(PrefabID("c"))
	g.Register(ShapeID("b"))
	g.Register(StampID("a"))
	g.AddDep(PrefabID("c"), ShapeID("b"))
	g.AddDep(ShapeID("b"), StampID("a"))

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	want := []ID{StampID("a"), ShapeID("b"), PrefabID("c")}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestTopoSortDiamond(t *testing.T) {
	g := NewGraph()
	g.Register(StampID("base"))
	g.Register(ShapeID("left"))
	g.Register(ShapeID("right"))
	g.Register(PrefabID("top"))
	g.AddDep(ShapeID("left"), StampID("base"))
	g.AddDep(ShapeID("right"), StampID("base"))
	g.AddDep(PrefabID("top"), ShapeID("left"))
	g.AddDep(PrefabID("top"), ShapeID("right"))

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}

	pos := make(map[ID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range g.Nodes() {
		for _, dep := range g.DependenciesOf(id) {
			if pos[dep] >= pos[id] {
				t.Errorf("%v sorted before its dependency %v", id, dep)
			}
		}
	}
}

func TestTopoSortDeterministic(t *testing.T) {
	build := func() *Graph {
		g := NewGraph()
		for _, name := range []string{"d", "b", "a", "c", "e"} {
			g.Register(ShapeID(name))
		}
		g.AddDep(ShapeID("d"), ShapeID("b"))
		g.AddDep(ShapeID("c"), ShapeID("a"))
		g.AddDep(ShapeID("e"), ShapeID("c"))
		return g
	}

	first, err := build().TopoSort()
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	for i := 0; i < 20; i++ {
		got, err := build().TopoSort()
		if err != nil {
			t.Fatalf("TopoSort run %d: %v", i, err)
		}
		for j := range first {
			if got[j] != first[j] {
				t.Fatalf("run %d: order[%d] = %v, want %v", i, j, got[j], first[j])
			}
		}
	}
}

func TestTopoSortCycle(t *testing.T) {
	g := NewGraph()
	g.AddDep(PrefabID("a"), PrefabID("b"))
	g.AddDep(PrefabID("b"), PrefabID("a"))

	_, err := g.TopoSort()
	if err == nil {
		t.Fatal("TopoSort on cyclic graph returned nil error")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("error type = %T, want *CycleError", err)
	}
	want := "registry: circular dependency: prefab:a -> prefab:b -> prefab:a"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTopoSortSelfCycle(t *testing.T) {
	g := NewGraph()
	g.AddDep(PrefabID("a"), PrefabID("a"))

	_, err := g.TopoSort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("error = %v, want *CycleError", err)
	}
	if len(cycleErr.Path) != 2 || cycleErr.Path[0] != PrefabID("a") || cycleErr.Path[1] != PrefabID("a") {
		t.Errorf("Path = %v, want [prefab:a prefab:a]", cycleErr.Path)
	}
}

func TestLevels(t *testing.T) {
	g := NewGraph()
	g.Register(StampID("a"))
	g.Register(StampID("b"))
	g.Register(ShapeID("s1"))
	g.Register(ShapeID("s2"))
	g.Register(PrefabID("p"))
	g.AddDep(ShapeID("s1"), StampID("a"))
	g.AddDep(ShapeID("s2"), StampID("b"))
	g.AddDep(PrefabID("p"), ShapeID("s1"))
	g.AddDep(PrefabID("p"), ShapeID("s2"))

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	levels := g.Levels(order)
	if len(levels) != 3 {
		t.Fatalf("len(levels) = %d, want 3", len(levels))
	}
	if len(levels[0]) != 2 || len(levels[1]) != 2 || len(levels[2]) != 1 {
		t.Errorf("level sizes = %d/%d/%d, want 2/2/1",
			len(levels[0]), len(levels[1]), len(levels[2]))
	}

	// No asset may share a level with one of its dependencies.
	levelOf := make(map[ID]int)
	for i, level := range levels {
		for _, id := range level {
			levelOf[id] = i
		}
	}
	for _, id := range order {
		for _, dep := range g.DependenciesOf(id) {
			if levelOf[dep] >= levelOf[id] {
				t.Errorf("%v at level %d not above dependency %v at level %d",
					id, levelOf[id], dep, levelOf[dep])
			}
		}
	}
}

func TestIDString(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{PaletteID("warm"), "palette:warm"},
		{StampID("brick"), "stamp:brick"},
		{BrushID("checker"), "brush:checker"},
		{ShaderID("crt"), "shader:crt"},
		{ShapeID("wall"), "shape:wall"},
		{PrefabID("tower"), "prefab:tower"},
		{MapID("level1"), "map:level1"},
		{TargetID("web"), "target:web"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
