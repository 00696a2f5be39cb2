// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Expr is a parsed color expression.
// This is a sealed interface - only types in this package implement it.
//
// Supported forms:
//   - HexExpr: a literal like #1A1A2E
//   - RefExpr: a reference to another named color, $gold
//   - PercentExpr / DegreesExpr: numeric arguments, 20% or 30deg
//   - FuncExpr: darken($gold, 20%), mix($a, $b, 50%), hueshift($a, 30deg), ...
type Expr interface {
	exprMarker()
}

// HexExpr is a literal hex color.
type HexExpr struct {
	Value string
}

// RefExpr is a reference to another named color in the same palette.
type RefExpr struct {
	Name string
}

// PercentExpr is a percentage argument.
type PercentExpr struct {
	Value float64
}

// DegreesExpr is an angle argument, used by hueshift.
type DegreesExpr struct {
	Value float64
}

// FuncExpr is a function call over sub-expressions.
type FuncExpr struct {
	Name string
	Args []Expr
}

func (HexExpr) exprMarker()     {}
func (RefExpr) exprMarker()     {}
func (PercentExpr) exprMarker() {}
func (DegreesExpr) exprMarker() {}
func (FuncExpr) exprMarker()    {}

// ParseExpr parses a color expression from a string.
//
//	#1A1A2E                      hex literal
//	$gold                        reference
//	darken($gold, 20%)           function call
//	mix($a, lighten($b, 10%), 50%)  nested call
func ParseExpr(input string) (Expr, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, fmt.Errorf("px: empty color expression")
	}

	if strings.HasPrefix(s, "#") {
		return HexExpr{Value: s}, nil
	}

	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("px: invalid percentage %q", s)
		}
		return PercentExpr{Value: v}, nil
	}

	if strings.HasSuffix(s, "deg") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "deg"), 64)
		if err != nil {
			return nil, fmt.Errorf("px: invalid angle %q", s)
		}
		return DegreesExpr{Value: v}, nil
	}

	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("px: unclosed function call %q", s)
		}
		name := strings.TrimSpace(s[:i])
		args, err := parseArgs(s[i+1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return FuncExpr{Name: name, Args: args}, nil
	}

	// A reference, with or without the $ sigil.
	return RefExpr{Name: strings.TrimPrefix(s, "$")}, nil
}

// parseArgs splits comma-separated arguments, respecting nested parentheses.
func parseArgs(input string) ([]Expr, error) {
	var args []Expr
	var current strings.Builder
	depth := 0

	flush := func() error {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s == "" {
			return nil
		}
		e, err := ParseExpr(s)
		if err != nil {
			return err
		}
		args = append(args, e)
		return nil
	}

	for _, c := range input {
		switch {
		case c == '(':
			depth++
			current.WriteRune(c)
		case c == ')':
			depth--
			current.WriteRune(c)
		case c == ',' && depth == 0:
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			current.WriteRune(c)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return args, nil
}

// LookupFunc resolves a color name to a concrete value.
// Returning false means the name is undefined in the active scope.
type LookupFunc func(name string) (RGBA, bool)

// Evaluator evaluates color expressions, resolving references through
// a caller-supplied lookup function.
type Evaluator struct {
	lookup LookupFunc
}

// NewEvaluator creates an evaluator with the given color lookup.
func NewEvaluator(lookup LookupFunc) *Evaluator {
	return &Evaluator{lookup: lookup}
}

// Eval evaluates an expression to a concrete color.
func (e *Evaluator) Eval(expr Expr) (RGBA, error) {
	switch x := expr.(type) {
	case HexExpr:
		return Hex(x.Value)

	case RefExpr:
		c, ok := e.lookup(x.Name)
		if !ok {
			return RGBA{}, fmt.Errorf("px: undefined color $%s", x.Name)
		}
		return c, nil

	case PercentExpr, DegreesExpr:
		return RGBA{}, fmt.Errorf("px: numeric argument cannot be evaluated as a color")

	case FuncExpr:
		return e.evalFunc(x)

	default:
		return RGBA{}, fmt.Errorf("px: unknown expression type %T", expr)
	}
}

func (e *Evaluator) evalFunc(f FuncExpr) (RGBA, error) {
	switch f.Name {
	case "darken":
		c, p, err := e.colorAndPercent(f)
		if err != nil {
			return RGBA{}, err
		}
		return adjustLightness(c, -p), nil

	case "lighten":
		c, p, err := e.colorAndPercent(f)
		if err != nil {
			return RGBA{}, err
		}
		return adjustLightness(c, p), nil

	case "saturate":
		c, p, err := e.colorAndPercent(f)
		if err != nil {
			return RGBA{}, err
		}
		return adjustSaturation(c, p), nil

	case "desaturate":
		c, p, err := e.colorAndPercent(f)
		if err != nil {
			return RGBA{}, err
		}
		return adjustSaturation(c, -p), nil

	case "hueshift":
		return e.evalHueShift(f)

	case "mix":
		return e.evalMix(f)

	case "alpha":
		c, p, err := e.colorAndPercent(f)
		if err != nil {
			return RGBA{}, err
		}
		a := math.Round(p / 100 * 255)
		c.A = uint8(math.Min(255, math.Max(0, a)))
		return c, nil

	default:
		return RGBA{}, fmt.Errorf("px: unknown color function %q (available: darken, lighten, saturate, desaturate, hueshift, mix, alpha)", f.Name)
	}
}

func (e *Evaluator) evalMix(f FuncExpr) (RGBA, error) {
	if len(f.Args) != 3 {
		return RGBA{}, fmt.Errorf("px: mix() requires 3 arguments, got %d", len(f.Args))
	}
	a, err := e.Eval(f.Args[0])
	if err != nil {
		return RGBA{}, err
	}
	b, err := e.Eval(f.Args[1])
	if err != nil {
		return RGBA{}, err
	}
	p, ok := f.Args[2].(PercentExpr)
	if !ok {
		return RGBA{}, fmt.Errorf("px: mix() requires a percentage as third argument")
	}
	return mixColors(a, b, p.Value/100), nil
}

func (e *Evaluator) evalHueShift(f FuncExpr) (RGBA, error) {
	if len(f.Args) != 2 {
		return RGBA{}, fmt.Errorf("px: hueshift() requires 2 arguments, got %d", len(f.Args))
	}
	c, err := e.Eval(f.Args[0])
	if err != nil {
		return RGBA{}, err
	}
	var deg float64
	switch a := f.Args[1].(type) {
	case DegreesExpr:
		deg = a.Value
	case PercentExpr:
		// A bare percentage is accepted and read as degrees.
		deg = a.Value
	default:
		return RGBA{}, fmt.Errorf("px: hueshift() requires an angle as second argument")
	}
	return shiftHue(c, deg), nil
}

func (e *Evaluator) colorAndPercent(f FuncExpr) (RGBA, float64, error) {
	if len(f.Args) != 2 {
		return RGBA{}, 0, fmt.Errorf("px: %s() requires 2 arguments, got %d", f.Name, len(f.Args))
	}
	c, err := e.Eval(f.Args[0])
	if err != nil {
		return RGBA{}, 0, err
	}
	p, ok := f.Args[1].(PercentExpr)
	if !ok {
		return RGBA{}, 0, fmt.Errorf("px: %s() requires a percentage as second argument", f.Name)
	}
	return c, p.Value, nil
}

// adjustLightness moves lightness in HSL space by a relative percentage.
// Positive values move toward white, negative toward black.
// A zero delta is an exact identity.
func adjustLightness(c RGBA, percent float64) RGBA {
	if percent == 0 {
		return c
	}
	h, s, l := toHSL(c)
	delta := percent / 100
	if delta > 0 {
		l += (1 - l) * delta
	} else {
		l += l * delta
	}
	return fromHSL(h, s, clamp01(l), c.A)
}

// adjustSaturation moves saturation in HSL space by a relative percentage.
// A zero delta is an exact identity.
func adjustSaturation(c RGBA, percent float64) RGBA {
	if percent == 0 {
		return c
	}
	h, s, l := toHSL(c)
	delta := percent / 100
	if delta > 0 {
		s += (1 - s) * delta
	} else {
		s += s * delta
	}
	return fromHSL(h, clamp01(s), l, c.A)
}

// shiftHue rotates the hue by the given number of degrees.
// A zero angle is an exact identity.
func shiftHue(c RGBA, degrees float64) RGBA {
	if degrees == 0 {
		return c
	}
	h, s, l := toHSL(c)
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return fromHSL(h, s, l, c.A)
}

// mixColors blends two colors channel-wise.
// factor 0 yields a, factor 1 yields b. Mixing a color with itself
// returns it unchanged for any factor.
func mixColors(a, b RGBA, factor float64) RGBA {
	f := clamp01(factor)
	inv := 1 - f
	return RGBA{
		R: uint8(math.Round(float64(a.R)*inv + float64(b.R)*f)),
		G: uint8(math.Round(float64(a.G)*inv + float64(b.G)*f)),
		B: uint8(math.Round(float64(a.B)*inv + float64(b.B)*f)),
		A: uint8(math.Round(float64(a.A)*inv + float64(b.A)*f)),
	}
}

func toHSL(c RGBA) (h, s, l float64) {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return cf.Hsl()
}

func fromHSL(h, s, l float64, alpha uint8) RGBA {
	cf := colorful.Hsl(h, s, l).Clamped()
	return RGBA{
		R: uint8(math.Round(cf.R * 255)),
		G: uint8(math.Round(cf.G * 255)),
		B: uint8(math.Round(cf.B * 255)),
		A: alpha,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
