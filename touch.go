package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/canvasui/ui"
)

// handleTouchEvents turns started and ended touches into press and release
// events. Every new touch also spawns a tile.
func (g *CanvasUI) handleTouchEvents() {
	// Initialize touch tracking maps if needed
	if g.lastTouchX == nil {
		g.lastTouchX = make(map[ebiten.TouchID]float64)
		g.lastTouchY = make(map[ebiten.TouchID]float64)
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.spawn()
		g.surface.PointerDown(g.touch(id, x, y))
	}

	// Remember where live touches are, a released touch has no position
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		t := g.touch(id, x, y)
		g.lastTouchX[id], g.lastTouchY[id] = t.X, t.Y
	}

	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, ok := g.lastTouchX[id]
		if !ok {
			px, py := inpututil.TouchPositionInPreviousTick(id)
			t := g.touch(id, px, py)
			g.surface.PointerUp(t)
			continue
		}
		g.surface.PointerUp(ui.Touch{X: x, Y: g.lastTouchY[id], ID: int(id)})
		delete(g.lastTouchX, id)
		delete(g.lastTouchY, id)
	}
}

// touch converts a touch position in screen pixels to window coordinates
func (g *CanvasUI) touch(id ebiten.TouchID, x, y int) ui.Touch {
	return ui.Touch{X: float64(x) / g.dpr, Y: float64(y) / g.dpr, ID: int(id)}
}
