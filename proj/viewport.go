package proj

import "math"

// Default authoring resolution
const (
	DefaultViewboxWidth  = 1920.0
	DefaultViewboxHeight = 1080.0
)

// Viewbox is the fixed logical coordinate space all layout math is expressed in.
type Viewbox struct {
	Width  float64
	Height float64
}

// DefaultViewbox returns the 1920x1080 authoring viewbox.
func DefaultViewbox() Viewbox {
	return Viewbox{Width: DefaultViewboxWidth, Height: DefaultViewboxHeight}
}

// Dimensions describes how the viewbox maps onto the device surface.
// It is recomputed on every resize.
type Dimensions struct {
	// Viewport size in CSS (window) pixels
	ViewportWidth  float64
	ViewportHeight float64
	DPR            float64

	// Device pixel size of the drawing surface
	CanvasWidth  float64
	CanvasHeight float64

	// Scale is the uniform cover factor between device pixels and logical units
	Scale float64

	// Logical width and height, used to position containers
	Width  float64
	Height float64

	// ScaleOffset corrects inaccuracies at high page zoom
	ScaleOffset float64
}

// Compute derives the surface dimensions for a viewport of the given CSS size
// and device pixel ratio.
//
// Parameters:
//   - vb: logical viewbox
//   - viewportWidth, viewportHeight: window size in CSS pixels
//   - dpr: device pixel ratio, values <= 0 are treated as 1
//
// The scale is the larger of the two axis ratios so the viewbox always covers
// the whole viewport ("cover", not "contain").
func Compute(vb Viewbox, viewportWidth, viewportHeight, dpr float64) Dimensions {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	if vb.Width <= 0 || vb.Height <= 0 {
		vb = DefaultViewbox()
	}
	viewportWidth = math.Max(0, viewportWidth)
	viewportHeight = math.Max(0, viewportHeight)

	canvasWidth := viewportWidth * dpr
	canvasHeight := viewportHeight * dpr

	scale := math.Max(canvasWidth/vb.Width, canvasHeight/vb.Height)
	if scale <= 0 {
		// Zero sized viewport (minimized window), keep the math finite
		scale = 1
	}

	return Dimensions{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		DPR:            dpr,
		CanvasWidth:    canvasWidth,
		CanvasHeight:   canvasHeight,
		Scale:          scale,
		Width:          canvasWidth / scale,
		Height:         canvasHeight / scale,
		ScaleOffset:    dpr / scale,
	}
}

// ToLogical converts a surface-relative CSS pixel coordinate to an integer
// logical coordinate.
func (d Dimensions) ToLogical(x, y float64) (lx, ly float64) {
	lx = math.Floor(x/d.Scale*d.DPR + d.ScaleOffset)
	ly = math.Floor(y/d.Scale*d.DPR + d.ScaleOffset)
	return lx, ly
}

// ToDevice converts a logical coordinate back to device pixels.
// It is the inverse of ToLogical up to the flooring step.
func (d Dimensions) ToDevice(lx, ly float64) (dx, dy float64) {
	dx = (lx - d.ScaleOffset) * d.Scale
	dy = (ly - d.ScaleOffset) * d.Scale
	return dx, dy
}
