package canvas

import (
	"github.com/OpticalFlyer/canvasui/canvas/css"
	"github.com/OpticalFlyer/canvasui/ui"
)

// Headless is a drawing context that paints nothing but measures text with
// the same fonts as Screen. It backs layout runs without a window.
type Headless struct {
	fonts *fontBank
	font  css.Font

	Width, Height int
}

var _ ui.Canvas = (*Headless)(nil)

func NewHeadless() (*Headless, error) {
	fonts, err := newFontBank()
	if err != nil {
		return nil, err
	}
	f, _ := css.ParseFont(css.DefaultFont)
	return &Headless{fonts: fonts, font: f}, nil
}

func (h *Headless) Reset(width, height int) {
	h.Width, h.Height = width, height
}

func (h *Headless) SetFont(v string) {
	if f, ok := css.ParseFont(v); ok {
		h.font = f
	}
}

func (h *Headless) MeasureText(str string) float64 {
	return h.fonts.measure(h.font, str)
}

func (*Headless) Save()                                {}
func (*Headless) Restore()                             {}
func (*Headless) Scale(float64, float64)               {}
func (*Headless) SetFillStyle(string)                  {}
func (*Headless) SetStrokeStyle(string)                {}
func (*Headless) SetLineWidth(float64)                 {}
func (*Headless) SetGlobalAlpha(float64)               {}
func (*Headless) FillRect(_, _, _, _ float64)          {}
func (*Headless) StrokeRect(_, _, _, _ float64)        {}
func (*Headless) ClearRect(_, _, _, _ float64)         {}
func (*Headless) DrawImage(ui.Image, float64, float64) {}
func (*Headless) FillText(string, float64, float64)    {}
func (*Headless) StrokeText(string, float64, float64)  {}
