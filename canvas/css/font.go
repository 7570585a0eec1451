package css

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// DefaultFont is what a drawing context starts with.
const DefaultFont = "10px sans-serif"

// Font is a parsed font shorthand.
type Font struct {
	Size   float64
	Bold   bool
	Italic bool
	Family string
}

// ParseFont parses a CSS font shorthand such as "italic bold 40px Arial".
// Only px and pt sizes are understood. ok is false when no size is found.
func ParseFont(s string) (f Font, ok bool) {
	tokens, ok := lex(s)
	if !ok {
		return Font{}, false
	}

	for i, t := range tokens {
		switch t.tt {
		case css.WhitespaceToken:
			continue
		case css.IdentToken:
			switch strings.ToLower(t.data) {
			case "italic", "oblique":
				f.Italic = true
			case "bold", "bolder":
				f.Bold = true
			case "normal", "lighter", "small-caps":
			default:
				return Font{}, false
			}
			continue
		case css.NumberToken:
			w, err := strconv.ParseFloat(t.data, 64)
			if err != nil {
				return Font{}, false
			}
			f.Bold = w >= 600
			continue
		case css.DimensionToken:
			v, found := parseSize(t.data)
			if !found {
				return Font{}, false
			}
			f.Size = v
			f.Family = family(skipLineHeight(tokens[i+1:]))
			return f, f.Size > 0
		}
		return Font{}, false
	}
	return Font{}, false
}

// skipLineHeight drops "/1.2" or "/20px" following the size.
func skipLineHeight(tokens []token) []token {
	for i, t := range tokens {
		switch {
		case t.tt == css.WhitespaceToken:
		case t.tt == css.DelimToken && t.data == "/":
			for j := i + 1; j < len(tokens); j++ {
				if tokens[j].tt != css.WhitespaceToken {
					return tokens[j+1:]
				}
			}
			return nil
		default:
			return tokens
		}
	}
	return tokens
}

// family joins the font family list back together with quotes removed.
func family(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.tt {
		case css.StringToken:
			b.WriteString(strings.Trim(t.data, `"'`))
		default:
			b.WriteString(t.data)
		}
	}
	return strings.TrimSpace(b.String())
}

func parseSize(dim string) (float64, bool) {
	end := len(dim)
	for end > 0 && (dim[end-1] < '0' || dim[end-1] > '9') && dim[end-1] != '.' {
		end--
	}
	v, err := strconv.ParseFloat(dim[:end], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(dim[end:]) {
	case "px":
		return v, true
	case "pt":
		return v * 4 / 3, true
	}
	return 0, false
}
