// Package css parses the small subset of CSS values the drawing context
// accepts: colors and the font shorthand.
package css

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
)

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb()/rgba()
// functions, "transparent" and the SVG named colors. The result is
// alpha-premultiplied. ok is false for anything else.
func ParseColor(s string) (c color.RGBA, ok bool) {
	tokens, ok := lex(s)
	tokens = significant(tokens)
	if !ok || len(tokens) == 0 {
		return c, false
	}

	first := tokens[0]
	switch first.tt {
	case css.IdentToken:
		if len(tokens) != 1 {
			return c, false
		}
		name := strings.ToLower(first.data)
		if name == "transparent" {
			return color.RGBA{}, true
		}
		c, ok = colornames.Map[name]
		return c, ok
	case css.HashToken:
		if len(tokens) != 1 {
			return c, false
		}
		return parseHex(strings.ToLower(first.data[1:]))
	case css.FunctionToken:
		switch strings.ToLower(first.data) {
		case "rgb(", "rgba(":
			return parseFunc(tokens[1:])
		}
	}
	return c, false
}

func parseHex(h string) (color.RGBA, bool) {
	var digits [8]uint8
	for i := 0; i < len(h); i++ {
		if i >= len(digits) {
			return color.RGBA{}, false
		}
		d, ok := hexDigit(h[i])
		if !ok {
			return color.RGBA{}, false
		}
		digits[i] = d
	}

	var r, g, b, a uint8 = 0, 0, 0, 0xff
	switch len(h) {
	case 3, 4:
		r, g, b = digits[0]*0x11, digits[1]*0x11, digits[2]*0x11
		if len(h) == 4 {
			a = digits[3] * 0x11
		}
	case 6, 8:
		r, g, b = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]
		if len(h) == 8 {
			a = digits[6]<<4 | digits[7]
		}
	default:
		return color.RGBA{}, false
	}
	return premultiply(r, g, b, a), true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// parseFunc handles the arguments of rgb() and rgba(), comma or space
// separated with an optional "/" before alpha. args runs up to and including
// the closing parenthesis.
func parseFunc(args []token) (color.RGBA, bool) {
	if len(args) == 0 || args[len(args)-1].tt != css.RightParenthesisToken {
		return color.RGBA{}, false
	}

	var values []token
	for _, t := range args[:len(args)-1] {
		switch {
		case t.tt == css.NumberToken, t.tt == css.PercentageToken:
			values = append(values, t)
		case t.tt == css.CommaToken, t.tt == css.DelimToken && t.data == "/":
		default:
			return color.RGBA{}, false
		}
	}
	if len(values) != 3 && len(values) != 4 {
		return color.RGBA{}, false
	}

	var rgb [3]uint8
	for i := range rgb {
		f, ok := number(values[i])
		if !ok {
			return color.RGBA{}, false
		}
		if values[i].tt == css.PercentageToken {
			f *= 0xff
		}
		rgb[i] = uint8(clamp(f, 0, 0xff) + 0.5)
	}
	a := uint8(0xff)
	if len(values) == 4 {
		f, ok := number(values[3])
		if !ok {
			return color.RGBA{}, false
		}
		a = uint8(clamp(f, 0, 1)*0xff + 0.5)
	}
	return premultiply(rgb[0], rgb[1], rgb[2], a), true
}

// number reads a NumberToken or PercentageToken; percentages return a fraction.
func number(t token) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 64)
	if err != nil {
		return 0, false
	}
	if t.tt == css.PercentageToken {
		f /= 100
	}
	return f, true
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 0xff {
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	mul := func(v uint8) uint8 { return uint8((uint32(v)*uint32(a) + 0x7f) / 0xff) }
	return color.RGBA{R: mul(r), G: mul(g), B: mul(b), A: a}
}

// WithAlpha scales a premultiplied color by a global alpha in [0, 1].
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.RGBA{}
	}
	mul := func(v uint8) uint8 { return uint8(float64(v)*alpha + 0.5) }
	return color.RGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: mul(c.A)}
}
