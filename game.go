package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/canvasui/canvas"
	"github.com/OpticalFlyer/canvasui/scene"
	"github.com/OpticalFlyer/canvasui/ui"
)

// CanvasUI implements ebiten.Game and hosts a single ui.Surface.
type CanvasUI struct {
	log       *zap.Logger
	screen    *canvas.Screen
	surface   *ui.Surface
	scene     *scene.Built
	debugMode bool
	// closed when the program is asked to stop
	done <-chan struct{}

	// window size in device independent pixels
	width, height float64
	dpr           float64
	cursor        ui.Cursor

	lastMouseX int
	lastMouseY int

	// Touch state, last known position of every live touch
	touchIDs   []ebiten.TouchID
	lastTouchX map[ebiten.TouchID]float64
	lastTouchY map[ebiten.TouchID]float64
}

var _ ui.Host = (*CanvasUI)(nil)

func (g *CanvasUI) ViewportSize() (float64, float64) { return g.width, g.height }
func (g *CanvasUI) DeviceScaleFactor() float64       { return g.dpr }

// Origin is always the window corner, the surface fills the whole window.
func (g *CanvasUI) Origin() (float64, float64) { return 0, 0 }

func (g *CanvasUI) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debugMode = !g.debugMode
	}

	x, y := ebiten.CursorPosition()
	mouse := ui.Mouse{X: float64(x) / g.dpr, Y: float64(y) / g.dpr}
	if x != g.lastMouseX || y != g.lastMouseY {
		g.surface.PointerMove(mouse)
		g.lastMouseX, g.lastMouseY = x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.surface.PointerDown(mouse)
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.surface.PointerUp(mouse)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.spawn()
	}

	g.handleTouchEvents()
	g.updateCursor()
	return nil
}

// updateCursor mirrors the cursor requested by the last rendered frame
func (g *CanvasUI) updateCursor() {
	c := g.surface.Cursor()
	if c == g.cursor {
		return
	}
	g.cursor = c
	switch c {
	case ui.CursorPointer:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

func (g *CanvasUI) spawn() {
	if g.scene == nil {
		return
	}
	c, err := g.scene.Spawn()
	switch {
	case errors.Is(err, scene.ErrNoSpawn):
	case err != nil:
		g.log.Warn("Unable to spawn container", zap.Error(err))
	default:
		g.log.Debug("Container spawned", zap.Int("id", c.ID()))
	}
}

func (g *CanvasUI) Draw(screen *ebiten.Image) {
	g.surface.Frame()
	if img := g.screen.Image(); img != nil {
		screen.DrawImage(img, nil)
	}

	if g.debugMode {
		d := g.surface.Dimensions()
		p := g.surface.Pointer()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Viewport: %gx%g @%g\nScale: %.4f\nPointer: %g,%g\nRoots: %d\nTPS: %.1f",
			d.ViewportWidth, d.ViewportHeight, d.DPR, d.Scale, p.X, p.Y, len(g.surface.Roots()), ebiten.ActualTPS()))
	}
}

// Layout renders at native resolution: the screen is the window size times
// the device scale factor.
func (g *CanvasUI) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.width || h != g.height || dpr != g.dpr {
		g.width, g.height, g.dpr = w, h, dpr
		g.surface.Resize()
		g.log.Debug("Window resized", zap.Float64("width", w), zap.Float64("height", h), zap.Float64("dpr", dpr))
	}
	return int(math.Ceil(w * dpr)), int(math.Ceil(h * dpr))
}
