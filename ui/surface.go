package ui

import (
	"math"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/OpticalFlyer/canvasui/proj"
)

// Surface owns the drawing context, the container forest and the pointer
// state. All methods must be called from the goroutine driving the frames,
// except ImageLoaded.
type Surface struct {
	canvas Canvas
	host   Host
	images ImageSource
	log    *zap.Logger

	viewbox proj.Viewbox
	dims    proj.Dimensions

	roots     []*Container
	pressable []*Container

	pointer Point
	cursor  Cursor
	nextID  int

	rendering bool
	pending   []*Container
	dirty     bool
	reflow    atomic.Bool
}

// Option configures a Surface.
type Option func(*Surface)

// WithViewbox sets the logical authoring resolution.
func WithViewbox(vb proj.Viewbox) Option {
	return func(s *Surface) { s.viewbox = vb }
}

// WithImages sets the image source used for background images.
func WithImages(images ImageSource) Option {
	return func(s *Surface) { s.images = images }
}

// WithLogger sets the logger, nil keeps the silent default.
func WithLogger(log *zap.Logger) Option {
	return func(s *Surface) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSurface creates a surface drawing on canvas inside host and computes
// its initial dimensions.
func NewSurface(canvas Canvas, host Host, opts ...Option) *Surface {
	s := &Surface{
		canvas:  canvas,
		host:    host,
		log:     zap.NewNop(),
		viewbox: proj.DefaultViewbox(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize()
	return s
}

// Dimensions returns the current device to viewbox mapping.
func (s *Surface) Dimensions() proj.Dimensions { return s.dims }

// Viewbox returns the logical authoring resolution.
func (s *Surface) Viewbox() proj.Viewbox { return s.viewbox }

// Roots returns a copy of the top-level containers.
func (s *Surface) Roots() []*Container { return slices.Clone(s.roots) }

// Pointer returns the last pointer position in logical coordinates.
func (s *Surface) Pointer() Point { return s.pointer }

// Cursor returns the cursor requested by the last rendered frame.
func (s *Surface) Cursor() Cursor { return s.cursor }

// Add appends a top-level container.
func (s *Surface) Add(c *Container) {
	if !s.adoptable(c) {
		s.log.Warn("Ignoring root container add", zap.Int("container", idOf(c)))
		return
	}
	s.roots = append(s.roots, c)
	s.attach(c)
	s.Resize()
}

// adoptable reports whether c can be inserted into this surface's forest.
func (s *Surface) adoptable(c *Container) bool {
	if c == nil || c.surface != s || c.parent != nil || c.attached || c.removed {
		return false
	}
	return !slices.Contains(s.roots, c)
}

// attach marks c and its subtree as part of the forest and registers every
// container that reacts to presses.
func (s *Surface) attach(c *Container) {
	c.attached = true
	if c.press != nil {
		s.pressable = append(s.pressable, c)
	}
	s.log.Debug("Container attached", zap.Int("container", c.id), zap.Int("parent", idOf(c.parent)))
	for _, child := range c.children {
		s.attach(child)
	}
}

// Remove splices c out of its parent and out of the press registry. During
// a render walk the removal is applied once the walk finishes.
func (s *Surface) Remove(c *Container) {
	if c == nil || c.surface != s || !c.attached || c.removed {
		return
	}
	if s.rendering {
		if !slices.Contains(s.pending, c) {
			s.pending = append(s.pending, c)
		}
		return
	}
	s.detach(c)
	s.Resize()
}

func (s *Surface) detach(c *Container) {
	if c.parent != nil {
		c.parent.children = deleteContainer(c.parent.children, c)
	} else {
		s.roots = deleteContainer(s.roots, c)
	}
	c.removed = true
	s.unregister(c)
	s.log.Debug("Container removed", zap.Int("container", c.id), zap.Int("parent", idOf(c.parent)))
}

func (s *Surface) unregister(c *Container) {
	c.attached = false
	s.pressable = deleteContainer(s.pressable, c)
	for _, child := range c.children {
		s.unregister(child)
	}
}

func deleteContainer(list []*Container, c *Container) []*Container {
	i := slices.Index(list, c)
	if i < 0 {
		return list
	}
	return slices.Delete(list, i, i+1)
}

// Resize recomputes the dimensions from the host, resets the drawing
// surface and lays out the whole forest.
func (s *Surface) Resize() {
	w, h := s.host.ViewportSize()
	s.dims = proj.Compute(s.viewbox, w, h, s.host.DeviceScaleFactor())

	s.canvas.Reset(int(math.Ceil(s.dims.CanvasWidth)), int(math.Ceil(s.dims.CanvasHeight)))
	s.canvas.Scale(s.dims.Scale, s.dims.Scale)

	s.Layout()
	s.dirty = false
}

// invalidate requests a layout pass once the current walk is over.
func (s *Surface) invalidate() {
	s.dirty = true
}

// ImageLoaded notifies the surface that an image finished loading. It is
// safe to call from any goroutine; the next Frame re-runs the layout.
func (s *Surface) ImageLoaded(string) {
	s.reflow.Store(true)
}

// Render paints the whole forest in order. Structural changes requested
// while painting are applied after the walk.
func (s *Surface) Render() {
	s.cursor = CursorDefault
	s.rendering = true
	for _, root := range slices.Clone(s.roots) {
		root.render()
	}
	s.rendering = false

	if len(s.pending) > 0 {
		pending := s.pending
		s.pending = nil
		for _, c := range pending {
			if c.attached && !c.removed {
				s.detach(c)
			}
		}
		s.Resize()
	}
	if s.dirty {
		s.Layout()
		s.dirty = false
	}
}

// Frame runs one animation tick: pending image reflows, clear and render.
// Scheduling frames is up to the caller.
func (s *Surface) Frame() {
	if s.reflow.Swap(false) {
		s.Resize()
	}
	s.canvas.ClearRect(0, 0, s.dims.Width, s.dims.Height)
	s.Render()
}

// toLogical maps an event's page position to logical coordinates.
func (s *Surface) toLogical(ev PointerEvent) Point {
	px, py := ev.pagePosition()
	ox, oy := s.host.Origin()
	x, y := s.dims.ToLogical(px-ox, py-oy)
	return Point{X: x, Y: y}
}

// ContainerAt returns the most recently registered press-capable container
// whose box contains p, or nil.
func (s *Surface) ContainerAt(p Point) *Container {
	for i := len(s.pressable) - 1; i >= 0; i-- {
		if c := s.pressable[i]; c.contains(p) {
			return c
		}
	}
	return nil
}

// PointerMove records the pointer position. Hover is evaluated while
// rendering.
func (s *Surface) PointerMove(ev PointerEvent) {
	s.pointer = s.toLogical(ev)
}

// PointerDown starts a press on the topmost press-capable container.
func (s *Surface) PointerDown(ev PointerEvent) {
	c := s.ContainerAt(s.toLogical(ev))
	if c == nil {
		return
	}
	c.setHolding(true)

	switch e := ev.(type) {
	case Touch:
		c.touchID, c.hasTouch = e.ID, true
	case Mouse:
		c.hasTouch = false
	}

	if c.press.Remove {
		s.Remove(c)
	}
	c.press.fire(c)
}

// PointerUp ends presses. A container still under the pointer gets its
// click; every matching container is released either way.
func (s *Surface) PointerUp(ev PointerEvent) {
	p := s.toLogical(ev)
	for _, c := range slices.Clone(s.pressable) {
		if !c.attached {
			continue
		}
		switch e := ev.(type) {
		case Touch:
			if !c.hasTouch || c.touchID != e.ID {
				continue
			}
		case Mouse:
		}
		s.release(c, p)
	}
}

func (s *Surface) release(c *Container, p Point) {
	if c.holding.Current() && c.click != nil && c.contains(p) {
		c.setClicked(!c.clicked.Current())
		if c.click.Remove {
			s.Remove(c)
		}
		c.click.fire(c)
	}
	c.setHolding(false)
	c.hasTouch = false
}
