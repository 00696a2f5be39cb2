// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"fmt"
	"strings"
)

// Graph tracks which assets depend on which, kind-agnostically. Adjacency
// keeps insertion order so topological sort and cycle reports are
// deterministic for a given registration sequence.
type Graph struct {
	nodes    []ID
	nodeSet  map[ID]bool
	deps     map[ID][]ID
	depSet   map[ID]map[ID]bool
	revDeps  map[ID][]ID
	revSet   map[ID]map[ID]bool
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		nodeSet: make(map[ID]bool),
		deps:    make(map[ID][]ID),
		depSet:  make(map[ID]map[ID]bool),
		revDeps: make(map[ID][]ID),
		revSet:  make(map[ID]map[ID]bool),
	}
}

// Register adds an asset to the graph, even with no dependencies.
func (g *Graph) Register(id ID) {
	if g.nodeSet[id] {
		return
	}
	g.nodeSet[id] = true
	g.nodes = append(g.nodes, id)
}

// AddDep records that from depends on to. Both assets are registered
// implicitly; duplicate edges are ignored.
func (g *Graph) AddDep(from, to ID) {
	g.Register(from)
	g.Register(to)

	if g.depSet[from] == nil {
		g.depSet[from] = make(map[ID]bool)
	}
	if g.depSet[from][to] {
		return
	}
	g.depSet[from][to] = true
	g.deps[from] = append(g.deps[from], to)

	if g.revSet[to] == nil {
		g.revSet[to] = make(map[ID]bool)
	}
	g.revSet[to][from] = true
	g.revDeps[to] = append(g.revDeps[to], from)
}

// DependenciesOf returns the direct dependencies of id, in edge order.
func (g *Graph) DependenciesOf(id ID) []ID {
	return g.deps[id]
}

// DependentsOf returns the assets directly depending on id, in edge order.
func (g *Graph) DependentsOf(id ID) []ID {
	return g.revDeps[id]
}

// Nodes returns all registered assets in registration order.
func (g *Graph) Nodes() []ID {
	return g.nodes
}

// Len returns the number of registered assets.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// CycleError reports a reference cycle. Path lists each asset once in
// discovery order, with the starting asset repeated at the end to mark
// closure.
type CycleError struct {
	Path []ID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = id.String()
	}
	return fmt.Sprintf("registry: circular dependency: %s", strings.Join(parts, " -> "))
}

// TopoSort returns the assets in dependency order (dependencies before
// dependents) using Kahn's algorithm. Ready nodes are consumed in
// registration order, making the result deterministic. On a cycle it
// returns a CycleError carrying the full path.
func (g *Graph) TopoSort() ([]ID, error) {
	inDegree := make(map[ID]int, len(g.nodes))
	for _, id := range g.nodes {
		inDegree[id] = len(g.deps[id])
	}

	var queue []ID
	for _, id := range g.nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]ID, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, dep := range g.revDeps[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, &CycleError{Path: g.findCycle()}
	}
	return order, nil
}

// findCycle locates one cycle by depth-first search with an explicit
// recursion stack, for error reporting after TopoSort fails.
func (g *Graph) findCycle() []ID {
	visited := make(map[ID]bool)
	onStack := make(map[ID]bool)
	var path []ID

	var dfs func(ID) []ID
	dfs = func(node ID) []ID {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, dep := range g.deps[node] {
			if !visited[dep] {
				if cycle := dfs(dep); cycle != nil {
					return cycle
				}
			} else if onStack[dep] {
				// Close the loop from the first occurrence of dep.
				start := 0
				for i, id := range path {
					if id == dep {
						start = i
						break
					}
				}
				cycle := append([]ID{}, path[start:]...)
				return append(cycle, dep)
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
		return nil
	}

	for _, id := range g.nodes {
		if !visited[id] {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Levels partitions the sorted assets by dependency depth: a leaf is level
// 0, and every other asset sits one level above its deepest dependency.
// Assets within one level never depend on each other, so a level is safe
// to render concurrently. order must be a valid topological order.
func (g *Graph) Levels(order []ID) [][]ID {
	depth := make(map[ID]int, len(order))
	maxDepth := 0
	for _, id := range order {
		d := 0
		for _, dep := range g.deps[id] {
			if dd := depth[dep] + 1; dd > d {
				d = dd
			}
		}
		depth[id] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]ID, maxDepth+1)
	for _, id := range order {
		d := depth[id]
		levels[d] = append(levels[d], id)
	}
	return levels
}
