// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

// Shader is a render profile: it binds one palette (plus an optional
// variant) to the pipeline and lists post-processing effects applied in
// order after rasterization.
type Shader struct {
	// Name is the shader's unique identifier.
	Name string

	// Palette names the palette used for color resolution.
	Palette string

	// Variant optionally activates a palette variant.
	Variant string

	// Inherits names the parent shader, if any. Merging is resolved by
	// the registry; the field is the declared reference.
	Inherits string

	// Effects are applied in order after rendering.
	Effects []Effect
}

// NewShader creates a shader binding the named palette.
func NewShader(name, palette string) *Shader {
	return &Shader{Name: name, Palette: palette}
}

// WithVariant sets the palette variant and returns the shader.
func (s *Shader) WithVariant(variant string) *Shader {
	s.Variant = variant
	return s
}

// WithEffect appends an effect and returns the shader.
func (s *Shader) WithEffect(e Effect) *Shader {
	s.Effects = append(s.Effects, e)
	return s
}

// WithInherits sets the parent shader and returns the shader.
func (s *Shader) WithInherits(parent string) *Shader {
	s.Inherits = parent
	return s
}

// MergeFrom folds a parent shader's settings into this one. Child settings
// win; parent effects run before child effects.
func (s *Shader) MergeFrom(parent *Shader) {
	if s.Palette == "" {
		s.Palette = parent.Palette
	}
	if s.Variant == "" {
		s.Variant = parent.Variant
	}
	merged := make([]Effect, 0, len(parent.Effects)+len(s.Effects))
	merged = append(merged, parent.Effects...)
	merged = append(merged, s.Effects...)
	s.Effects = merged
}

// Clone returns a deep copy, used when the registry materializes
// inheritance without mutating the registered definition.
func (s *Shader) Clone() *Shader {
	out := *s
	out.Effects = append([]Effect(nil), s.Effects...)
	return &out
}

// EffectKind identifies a post-processing effect.
type EffectKind string

const (
	EffectVignette   EffectKind = "vignette"
	EffectScanlines  EffectKind = "scanlines"
	EffectBrightness EffectKind = "brightness"
	EffectContrast   EffectKind = "contrast"
)

// Effect is one post-processing step. Recognized kinds use the typed
// fields; unrecognized kinds are carried opaquely in Params so outer
// layers can still see them.
type Effect struct {
	Kind EffectKind

	// Amount is the effect strength. Vignette and scanlines read it as
	// opacity in [0, 1]; brightness and contrast as an adjustment in
	// [-1, 1] where 0 is a no-op.
	Amount float64

	// Gap is the scanline spacing in pixels (scanlines only).
	Gap int

	// Params carries raw parameters for unrecognized effect kinds.
	Params map[string]string
}

// Vignette darkens image corners.
func Vignette(strength float64) Effect {
	return Effect{Kind: EffectVignette, Amount: clamp01(strength)}
}

// Scanlines darkens every Gap-th row. Gap defaults to 2.
func Scanlines(opacity float64, gap int) Effect {
	if gap <= 0 {
		gap = 2
	}
	return Effect{Kind: EffectScanlines, Amount: clamp01(opacity), Gap: gap}
}

// Brightness adjusts overall brightness; amount in [-1, 1].
func Brightness(amount float64) Effect {
	return Effect{Kind: EffectBrightness, Amount: clampSigned(amount)}
}

// Contrast adjusts contrast; amount in [-1, 1].
func Contrast(amount float64) Effect {
	return Effect{Kind: EffectContrast, Amount: clampSigned(amount)}
}

// CustomEffect carries an unrecognized effect tag opaquely.
func CustomEffect(kind string, params map[string]string) Effect {
	return Effect{Kind: EffectKind(kind), Params: params}
}

// Recognized reports whether the effect kind has a typed implementation.
func (e Effect) Recognized() bool {
	switch e.Kind {
	case EffectVignette, EffectScanlines, EffectBrightness, EffectContrast:
		return true
	default:
		return false
	}
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
