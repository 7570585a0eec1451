package ui

import "image"

// Canvas is the immediate-mode 2D drawing context the UI paints onto.
// Only this narrow subset is used by containers and the surface.
type Canvas interface {
	// Reset resizes the physical drawing surface to the given device pixel
	// size and clears the transform and state stack.
	Reset(width, height int)
	Save()
	Restore()
	Scale(x, y float64)

	SetFillStyle(color string)
	SetStrokeStyle(color string)
	SetLineWidth(width float64)
	SetGlobalAlpha(alpha float64)
	SetFont(font string)

	FillRect(x, y, width, height float64)
	StrokeRect(x, y, width, height float64)
	ClearRect(x, y, width, height float64)
	DrawImage(img Image, x, y float64)

	MeasureText(text string) float64
	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)
}

// Host describes the environment the drawing surface lives in.
type Host interface {
	// ViewportSize returns the visible size in CSS (window) pixels.
	ViewportSize() (width, height float64)
	DeviceScaleFactor() float64
	// Origin returns the surface's top-left corner in page coordinates,
	// scroll offset included.
	Origin() (x, y float64)
}

// Image is a handle to an image whose pixels may arrive later.
type Image interface {
	// Size returns the natural pixel size, (0, 0) until loaded.
	Size() (width, height int)
	Loaded() bool
	Pixels() image.Image
}

// ImageSource resolves image handles by source string. Repeated requests for
// the same source return the same handle.
type ImageSource interface {
	Image(src string) Image
}

// Point is a position in logical (viewbox) coordinates.
type Point struct {
	X, Y float64
}

// Rectangle represents the bounds of a Container
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// X2 returns the right edge.
func (r Rectangle) X2() float64 { return r.X + r.Width }

// Y2 returns the bottom edge.
func (r Rectangle) Y2() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r, edges included.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X2() &&
		p.Y >= r.Y && p.Y <= r.Y2()
}

// Cursor is the pointer affordance requested by the UI for the current frame.
type Cursor string

const (
	CursorDefault Cursor = ""
	CursorPointer Cursor = "pointer"
)
