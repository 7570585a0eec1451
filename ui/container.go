package ui

import "go.uber.org/zap"

// Options is the declarative description of a container.
type Options struct {
	// X1, Y1 place a root container that has no Position style.
	X1, Y1 float64
	// OffsetX, OffsetY are added after the anchor is resolved.
	OffsetX, OffsetY float64
	// Width, Height are the base size; children add to it.
	Width, Height float64

	Style Style
	Hover *Event
	Press *Event
	Click *Event
}

// Container is a rectangular node of the layout tree.
type Container struct {
	id      int
	surface *Surface
	parent  *Container

	children []*Container

	style  Style
	merged Style

	hover *Event
	press *Event
	click *Event

	// authored base size, never changed by layout
	initialWidth  float64
	initialHeight float64
	authoredX     float64
	authoredY     float64
	offsetX       float64
	offsetY       float64

	x1, y1        float64
	width, height float64

	hovering State
	holding  State
	clicked  State

	touchID  int
	hasTouch bool

	attached bool
	removed  bool
}

// NewContainer creates a detached container owned by s. Ids are assigned in
// construction order.
func (s *Surface) NewContainer(opts Options) *Container {
	c := &Container{
		id:            s.nextID,
		surface:       s,
		style:         opts.Style.Clone(),
		hover:         opts.Hover,
		press:         opts.Press,
		click:         opts.Click,
		initialWidth:  opts.Width,
		initialHeight: opts.Height,
		authoredX:     opts.X1,
		authoredY:     opts.Y1,
		offsetX:       opts.OffsetX,
		offsetY:       opts.OffsetY,
		x1:            opts.X1,
		y1:            opts.Y1,
		width:         opts.Width,
		height:        opts.Height,
		hovering:      NewState(false),
		holding:       NewState(false),
		clicked:       NewState(false),
	}
	s.nextID++
	c.merged = c.style.Clone()
	return c
}

// ID returns the container's identity, unique within its surface.
func (c *Container) ID() int { return c.id }

// Parent returns the parent container, nil for roots and detached containers.
func (c *Container) Parent() *Container { return c.parent }

// Children returns a copy of the child list in painting order.
func (c *Container) Children() []*Container {
	out := make([]*Container, len(c.children))
	copy(out, c.children)
	return out
}

// Bounds returns the box computed by the last layout pass.
func (c *Container) Bounds() Rectangle {
	return Rectangle{X: c.x1, Y: c.y1, Width: c.width, Height: c.height}
}

// InitialSize returns the authored base size.
func (c *Container) InitialSize() (width, height float64) {
	return c.initialWidth, c.initialHeight
}

// Style returns the authored base style.
func (c *Container) Style() Style { return c.style.Clone() }

// EffectiveStyle returns the base style merged with the active event overlays.
func (c *Container) EffectiveStyle() Style { return c.merged.Clone() }

func (c *Container) Hovering() bool { return c.hovering.Current() }
func (c *Container) Holding() bool  { return c.holding.Current() }
func (c *Container) Clicked() bool  { return c.clicked.Current() }

// Attached reports whether the container is part of its surface's forest.
func (c *Container) Attached() bool { return c.attached }

// Add appends child to this container. A child can only be added once and
// never below itself.
func (c *Container) Add(child *Container) {
	if !c.surface.adoptable(child) || c.descendsFrom(child) {
		c.surface.log.Warn("Ignoring container add", zap.Int("parent", c.id), zap.Int("child", idOf(child)))
		return
	}
	child.parent = c
	c.children = append(c.children, child)
	if c.attached {
		c.surface.attach(child)
		c.surface.Resize()
	}
}

// Remove detaches the container from its surface. Removing twice is a no-op.
func (c *Container) Remove() {
	c.surface.Remove(c)
}

func (c *Container) setHovering(v bool) {
	c.hovering.Update(v)
	c.refresh()
}

func (c *Container) setHolding(v bool) {
	c.holding.Update(v)
	c.refresh()
}

func (c *Container) setClicked(v bool) {
	c.clicked.Update(v)
	c.refresh()
}

// refresh recomputes the effective style when one of the interaction flags
// flipped. Every flag is consumed so one transition is never counted twice.
func (c *Container) refresh() {
	hover := c.hovering.Updated()
	press := c.holding.Updated()
	click := c.clicked.Updated()
	if !hover && !press && !click {
		return
	}

	styles := c.style.Clone()
	if c.hovering.Current() && c.hover != nil {
		styles.Merge(c.hover.Style)
	}
	if c.holding.Current() && c.press != nil {
		styles.Merge(c.press.Style)
	}
	if c.clicked.Current() && c.click != nil {
		styles.Merge(c.click.Style)
	}
	c.merged = styles

	// style may change size or alignment
	c.surface.invalidate()
}

// descendsFrom reports whether c is a or lies in a's subtree.
func (c *Container) descendsFrom(a *Container) bool {
	for p := c; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

func (c *Container) contains(p Point) bool {
	return c.Bounds().Contains(p)
}

func idOf(c *Container) int {
	if c == nil {
		return -1
	}
	return c.id
}
