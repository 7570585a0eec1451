package ui

import (
	"fmt"
	"image"
	"testing"
)

// recordingCanvas logs every drawing call as a string.
type recordingCanvas struct {
	ops        []string
	charWidth  float64
	resets     int
	lastWidth  int
	lastHeight int
}

func (c *recordingCanvas) record(format string, args ...any) {
	c.ops = append(c.ops, fmt.Sprintf(format, args...))
}

func (c *recordingCanvas) Reset(width, height int) {
	c.resets++
	c.lastWidth, c.lastHeight = width, height
}
func (c *recordingCanvas) Save()                 { c.record("save") }
func (c *recordingCanvas) Restore()              { c.record("restore") }
func (c *recordingCanvas) Scale(x, y float64)    { c.record("scale %g %g", x, y) }
func (c *recordingCanvas) SetFillStyle(v string) { c.record("fillStyle %s", v) }
func (c *recordingCanvas) SetStrokeStyle(v string) {
	c.record("strokeStyle %s", v)
}
func (c *recordingCanvas) SetLineWidth(w float64)   { c.record("lineWidth %g", w) }
func (c *recordingCanvas) SetGlobalAlpha(a float64) { c.record("alpha %g", a) }
func (c *recordingCanvas) SetFont(f string)         { c.record("font %s", f) }
func (c *recordingCanvas) FillRect(x, y, w, h float64) {
	c.record("fillRect %g %g %g %g", x, y, w, h)
}
func (c *recordingCanvas) StrokeRect(x, y, w, h float64) {
	c.record("strokeRect %g %g %g %g", x, y, w, h)
}
func (c *recordingCanvas) ClearRect(x, y, w, h float64) {
	c.record("clearRect %g %g %g %g", x, y, w, h)
}
func (c *recordingCanvas) DrawImage(_ Image, x, y float64) { c.record("drawImage %g %g", x, y) }
func (c *recordingCanvas) MeasureText(text string) float64 {
	return float64(len(text)) * c.charWidth
}
func (c *recordingCanvas) FillText(text string, x, y float64) {
	c.record("fillText %s %g %g", text, x, y)
}
func (c *recordingCanvas) StrokeText(text string, x, y float64) {
	c.record("strokeText %s %g %g", text, x, y)
}

func (c *recordingCanvas) clear() { c.ops = nil }

type fixedHost struct {
	width, height float64
	dpr           float64
	originX       float64
	originY       float64
}

func (h *fixedHost) ViewportSize() (float64, float64) { return h.width, h.height }
func (h *fixedHost) DeviceScaleFactor() float64       { return h.dpr }
func (h *fixedHost) Origin() (float64, float64)       { return h.originX, h.originY }

type stubImage struct {
	width, height int
	loaded        bool
}

func (i *stubImage) Size() (int, int) {
	if !i.loaded {
		return 0, 0
	}
	return i.width, i.height
}
func (i *stubImage) Loaded() bool        { return i.loaded }
func (i *stubImage) Pixels() image.Image { return nil }

type stubImages map[string]*stubImage

func (s stubImages) Image(src string) Image {
	img, ok := s[src]
	if !ok {
		img = &stubImage{}
		s[src] = img
	}
	return img
}

// newTestSurface returns a surface on a 1920x1080 viewport at dpr 1, so
// scale is 1 and a page coordinate p maps to floor(p + 1).
func newTestSurface(t *testing.T, opts ...Option) (*Surface, *recordingCanvas, *fixedHost) {
	t.Helper()
	canvas := &recordingCanvas{charWidth: 10}
	host := &fixedHost{width: 1920, height: 1080, dpr: 1}
	return NewSurface(canvas, host, opts...), canvas, host
}

// at returns a mouse event that maps to the logical point (x, y) on a
// surface created by newTestSurface.
func at(x, y float64) Mouse {
	return Mouse{X: x - 1, Y: y - 1}
}

func touchAt(x, y float64, id int) Touch {
	return Touch{X: x - 1, Y: y - 1, ID: id}
}

func box(s *Surface, w, h float64) *Container {
	return s.NewContainer(Options{Width: w, Height: h})
}

func centered() *Position {
	return &Position{
		Horizontal: &AxisAlign{Align: "middle", IncludeBox: true},
		Vertical:   &AxisAlign{Align: "middle", IncludeBox: true},
	}
}

func assertBounds(t *testing.T, c *Container, want Rectangle) {
	t.Helper()
	if got := c.Bounds(); got != want {
		t.Errorf("container %d bounds = %+v; want %+v", c.ID(), got, want)
	}
}
