package ui

import "math"

// Layout sizes every container bottom-up and then positions it top-down.
// Sizes always restart from the authored base, so repeated passes with the
// same input produce the same geometry.
func (s *Surface) Layout() {
	for _, root := range s.roots {
		s.measure(root)
	}
	for _, root := range s.roots {
		s.place(root, root.authoredX, root.authoredY)
	}
}

// baseSize returns the size a container starts from before children are added.
// A loaded background image overrides the authored size.
func (s *Surface) baseSize(c *Container) (float64, float64) {
	img := c.merged.Image
	if img == nil || img.Src == "" || s.images == nil {
		return c.initialWidth, c.initialHeight
	}
	handle := s.images.Image(img.Src)
	if handle == nil || !handle.Loaded() {
		return c.initialWidth, c.initialHeight
	}
	w, h := handle.Size()
	sx, sy := imageScale(img, w, h)
	return float64(w) * sx, float64(h) * sy
}

func (s *Surface) measure(c *Container) {
	for _, child := range c.children {
		s.measure(child)
	}

	c.width, c.height = s.baseSize(c)

	vertical := c.merged.vertical()
	last := len(c.children) - 1
	for i, child := range c.children {
		if vertical {
			c.height += child.height
			if i < last {
				c.height += margin(child, true)
			}
			c.width = math.Max(c.width, child.width)
		} else {
			c.width += child.width
			if i < last {
				c.width += margin(child, false)
			}
			c.height = math.Max(c.height, child.height)
		}
	}
}

// place positions c in the slot (x, y), or at its own Position when it has
// one, shifts it by its offset and then stacks its children from there.
func (s *Surface) place(c *Container, x, y float64) {
	if pos := c.merged.Position; pos != nil {
		x, y = s.anchor(c, pos, x, y)
	}
	x += c.offsetX
	y += c.offsetY
	c.x1, c.y1 = x, y

	vertical := c.merged.vertical()
	cx, cy := x, y
	for _, child := range c.children {
		s.place(child, cx, cy)

		// Next sibling starts right after this one on the stacking axis and
		// inherits its cross axis coordinate.
		if vertical {
			cx, cy = child.x1, child.y1+child.height+margin(child, true)
		} else {
			cx, cy = child.x1+child.width+margin(child, false), child.y1
		}
	}
}

// anchor resolves a Position against the logical viewport. An axis without
// alignment keeps the slot coordinate.
func (s *Surface) anchor(c *Container, pos *Position, slotX, slotY float64) (x, y float64) {
	width, height := s.dims.Width, s.dims.Height

	if h := pos.Horizontal; h != nil {
		switch h.Align {
		case "middle":
			x = width / 2
			if h.IncludeBox {
				x -= c.width / 2
			}
		case "right":
			x = width
			if h.IncludeBox {
				x -= c.width
			}
		default:
			x = 0
		}
	} else {
		x = slotX
	}

	if v := pos.Vertical; v != nil {
		switch v.Align {
		case "middle":
			y = height / 2
			if v.IncludeBox {
				y -= c.height / 2
			}
		case "bottom":
			y = height
			if v.IncludeBox {
				y -= c.height
			}
		default:
			y = 0
		}
	} else {
		y = slotY
	}
	return x, y
}

// margin is the gap a child leaves after itself on the stacking axis.
func margin(c *Container, vertical bool) float64 {
	m := c.merged.MarginRight
	if vertical {
		m = c.merged.MarginBottom
	}
	if m == nil {
		return 0
	}
	return *m
}
