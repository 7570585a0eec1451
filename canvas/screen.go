// Package canvas implements the UI drawing context on top of ebiten.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/OpticalFlyer/canvasui/canvas/css"
	"github.com/OpticalFlyer/canvasui/ui"
)

type drawState struct {
	scaleX, scaleY float64
	fill, stroke   color.RGBA
	lineWidth      float64
	alpha          float64
	font           css.Font
}

func defaultState() drawState {
	f, _ := css.ParseFont(css.DefaultFont)
	black := color.RGBA{A: 0xff}
	return drawState{
		scaleX: 1, scaleY: 1,
		fill: black, stroke: black,
		lineWidth: 1,
		alpha:     1,
		font:      f,
	}
}

// Screen is an offscreen ebiten image with 2D-context style drawing state.
// The game copies Image() to the window every frame.
type Screen struct {
	log    *zap.Logger
	fonts  *fontBank
	target *ebiten.Image
	images map[ui.Image]*ebiten.Image

	state drawState
	stack []drawState
}

var _ ui.Canvas = (*Screen)(nil)

func NewScreen(log *zap.Logger) (*Screen, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fonts, err := newFontBank()
	if err != nil {
		return nil, err
	}
	return &Screen{
		log:    log,
		fonts:  fonts,
		images: make(map[ui.Image]*ebiten.Image),
		state:  defaultState(),
	}, nil
}

// Image returns the backing image, nil before the first Reset.
func (s *Screen) Image() *ebiten.Image { return s.target }

// Reset reallocates the backing image when the size changed, clears it and
// drops all drawing state.
func (s *Screen) Reset(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if s.target == nil || s.target.Bounds().Dx() != width || s.target.Bounds().Dy() != height {
		if s.target != nil {
			s.target.Deallocate()
		}
		s.target = ebiten.NewImage(width, height)
		s.log.Debug("Canvas resized", zap.Int("width", width), zap.Int("height", height))
	} else {
		s.target.Clear()
	}
	s.state = defaultState()
	s.stack = s.stack[:0]
}

func (s *Screen) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *Screen) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Screen) Scale(x, y float64) {
	s.state.scaleX *= x
	s.state.scaleY *= y
}

// Invalid values are ignored and the previous value is kept.

func (s *Screen) SetFillStyle(v string) {
	if c, ok := css.ParseColor(v); ok {
		s.state.fill = c
	}
}

func (s *Screen) SetStrokeStyle(v string) {
	if c, ok := css.ParseColor(v); ok {
		s.state.stroke = c
	}
}

func (s *Screen) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		s.state.lineWidth = w
	}
}

func (s *Screen) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		s.state.alpha = a
	}
}

func (s *Screen) SetFont(v string) {
	if f, ok := css.ParseFont(v); ok {
		s.state.font = f
	}
}

// device converts a logical point to device pixels.
func (s *Screen) device(x, y float64) (float64, float64) {
	return x * s.state.scaleX, y * s.state.scaleY
}

func (s *Screen) FillRect(x, y, width, height float64) {
	if s.target == nil {
		return
	}
	dx, dy := s.device(x, y)
	dw, dh := s.device(width, height)
	vector.DrawFilledRect(s.target, float32(dx), float32(dy), float32(dw), float32(dh),
		css.WithAlpha(s.state.fill, s.state.alpha), true)
}

func (s *Screen) StrokeRect(x, y, width, height float64) {
	if s.target == nil {
		return
	}
	dx, dy := s.device(x, y)
	dw, dh := s.device(width, height)
	vector.StrokeRect(s.target, float32(dx), float32(dy), float32(dw), float32(dh),
		float32(s.state.lineWidth*s.state.scaleX), css.WithAlpha(s.state.stroke, s.state.alpha), true)
}

func (s *Screen) ClearRect(x, y, width, height float64) {
	if s.target == nil {
		return
	}
	x1, y1 := s.device(x, y)
	x2, y2 := s.device(x+width, y+height)
	r := image.Rect(
		int(math.Floor(x1)), int(math.Floor(y1)),
		int(math.Ceil(x2)), int(math.Ceil(y2)),
	).Intersect(s.target.Bounds())
	if r.Empty() {
		return
	}
	s.target.SubImage(r).(*ebiten.Image).Clear()
}

// DrawImage draws img at its natural size. Unloaded images are skipped.
func (s *Screen) DrawImage(img ui.Image, x, y float64) {
	if s.target == nil || img == nil || !img.Loaded() {
		return
	}
	src, ok := s.images[img]
	if !ok {
		pixels := img.Pixels()
		if pixels == nil {
			return
		}
		src = ebiten.NewImageFromImage(pixels)
		s.images[img] = src
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Scale(s.state.scaleX, s.state.scaleY)
	op.ColorScale.ScaleAlpha(float32(s.state.alpha))
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(src, op)
}

// face returns the current font at device resolution.
func (s *Screen) face() font.Face {
	f, err := s.fonts.face(s.state.font, s.state.scaleY)
	if err != nil {
		s.log.Warn("Unable to create font face", zap.Float64("size", s.state.font.Size), zap.Error(err))
		return nil
	}
	return f
}

// MeasureText returns the advance width in logical pixels.
func (s *Screen) MeasureText(str string) float64 {
	return s.fonts.measure(s.state.font, str)
}

// FillText draws str with its baseline at y.
func (s *Screen) FillText(str string, x, y float64) {
	face := s.face()
	if s.target == nil || face == nil || str == "" {
		return
	}
	dx, dy := s.device(x, y)
	text.Draw(s.target, str, face, int(math.Round(dx)), int(math.Round(dy)),
		css.WithAlpha(s.state.fill, s.state.alpha))
}

// StrokeText outlines str. The outline is built by stamping the glyphs
// around a disc of the line width and cutting the glyphs themselves out.
func (s *Screen) StrokeText(str string, x, y float64) {
	face := s.face()
	if s.target == nil || face == nil || str == "" {
		return
	}
	bounds := text.BoundString(face, str)
	if bounds.Empty() {
		return
	}

	pad := int(math.Ceil(s.state.lineWidth * s.state.scaleX / 2))
	scratch := ebiten.NewImage(bounds.Dx()+2*pad, bounds.Dy()+2*pad)
	defer scratch.Deallocate()

	// dot position inside the scratch image
	ox, oy := pad-bounds.Min.X, pad-bounds.Min.Y
	for dx := -pad; dx <= pad; dx++ {
		for dy := -pad; dy <= pad; dy++ {
			if dx*dx+dy*dy > pad*pad {
				continue
			}
			text.Draw(scratch, str, face, ox+dx, oy+dy, s.state.stroke)
		}
	}
	cut := &ebiten.DrawImageOptions{}
	cut.GeoM.Translate(float64(ox), float64(oy))
	cut.Blend = ebiten.BlendDestinationOut
	text.DrawWithOptions(scratch, str, face, cut)

	dx, dy := s.device(x, y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(dx)-float64(ox), math.Round(dy)-float64(oy))
	op.ColorScale.ScaleAlpha(float32(s.state.alpha))
	s.target.DrawImage(scratch, op)
}
