package canvas

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/OpticalFlyer/canvasui/canvas/css"
)

type faceKey struct {
	// size in 1/64 pixels
	size   int
	bold   bool
	italic bool
}

// fontBank holds the Go font family and caches sized faces. Every family name
// maps onto it.
type fontBank struct {
	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
	cache      map[faceKey]font.Face
}

func newFontBank() (*fontBank, error) {
	bank := &fontBank{cache: make(map[faceKey]font.Face)}
	for _, f := range []struct {
		dst  **opentype.Font
		ttf  []byte
		name string
	}{
		{&bank.regular, goregular.TTF, "regular"},
		{&bank.bold, gobold.TTF, "bold"},
		{&bank.italic, goitalic.TTF, "italic"},
		{&bank.boldItalic, gobolditalic.TTF, "bold italic"},
	} {
		parsed, err := opentype.Parse(f.ttf)
		if err != nil {
			return nil, fmt.Errorf("parsing %s font: %w", f.name, err)
		}
		*f.dst = parsed
	}
	return bank, nil
}

// face returns a face for desc rendered at size*scale pixels.
func (b *fontBank) face(desc css.Font, scale float64) (font.Face, error) {
	px := desc.Size * scale
	key := faceKey{size: int(math.Round(px * 64)), bold: desc.Bold, italic: desc.Italic}
	if f, ok := b.cache[key]; ok {
		return f, nil
	}

	var base *opentype.Font
	switch {
	case desc.Bold && desc.Italic:
		base = b.boldItalic
	case desc.Bold:
		base = b.bold
	case desc.Italic:
		base = b.italic
	default:
		base = b.regular
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    float64(key.size) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %gpx face: %w", px, err)
	}
	b.cache[key] = face
	return face, nil
}

// measure returns the advance width of text in unscaled pixels.
func (b *fontBank) measure(desc css.Font, text string) float64 {
	face, err := b.face(desc, 1)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(face, text)) / 64
}
