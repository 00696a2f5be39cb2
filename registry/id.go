// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package registry provides the typed store binding all named asset
// definitions together.
//
// A Builder accumulates definitions of every kind, then Build validates
// cross-references as one uniform dependency graph and produces an
// immutable Registry: resolved palettes and shaders, a deterministic
// topological build order, dependency-depth levels for parallel rendering,
// and per-asset content hashes for cache invalidation.
//
// Missing references are not structural errors - they are deferred to the
// render layer, which substitutes placeholders and warns. Only reference
// cycles are fatal at build time.
package registry

import "fmt"

// Kind is the type tag of an asset.
type Kind uint8

const (
	KindPalette Kind = iota
	KindStamp
	KindBrush
	KindShader
	KindShape
	KindPrefab
	KindMap
	KindTarget
)

// String returns the kind's short name.
func (k Kind) String() string {
	switch k {
	case KindPalette:
		return "palette"
	case KindStamp:
		return "stamp"
	case KindBrush:
		return "brush"
	case KindShader:
		return "shader"
	case KindShape:
		return "shape"
	case KindPrefab:
		return "prefab"
	case KindMap:
		return "map"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// ID uniquely identifies an asset as (kind, name). Different kinds may
// share a name; the pair is the key everywhere in the registry, so the
// graph, cycle detector and topological sort stay kind-agnostic.
type ID struct {
	Kind Kind
	Name string
}

// String returns "kind:name".
func (id ID) String() string {
	return fmt.Sprintf("%s:%s", id.Kind, id.Name)
}

// PaletteID creates a palette asset ID.
func PaletteID(name string) ID { return ID{Kind: KindPalette, Name: name} }

// StampID creates a stamp asset ID.
func StampID(name string) ID { return ID{Kind: KindStamp, Name: name} }

// BrushID creates a brush asset ID.
func BrushID(name string) ID { return ID{Kind: KindBrush, Name: name} }

// ShaderID creates a shader asset ID.
func ShaderID(name string) ID { return ID{Kind: KindShader, Name: name} }

// ShapeID creates a shape asset ID.
func ShapeID(name string) ID { return ID{Kind: KindShape, Name: name} }

// PrefabID creates a prefab asset ID.
func PrefabID(name string) ID { return ID{Kind: KindPrefab, Name: name} }

// MapID creates a map asset ID.
func MapID(name string) ID { return ID{Kind: KindMap, Name: name} }

// TargetID creates a target asset ID.
func TargetID(name string) ID { return ID{Kind: KindTarget, Name: name} }
