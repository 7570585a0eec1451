package ui

import "testing"

func TestLayoutCenteredRow(t *testing.T) {
	s, _, _ := newTestSurface(t)
	parent := s.NewContainer(Options{Style: Style{Align: AlignHorizontal, Position: centered()}})
	children := []*Container{box(s, 200, 200), box(s, 200, 200), box(s, 200, 200)}
	for _, c := range children {
		parent.Add(c)
	}
	s.Add(parent)

	assertBounds(t, parent, Rectangle{X: 660, Y: 440, Width: 600, Height: 200})
	for i, c := range children {
		assertBounds(t, c, Rectangle{X: 660 + float64(i)*200, Y: 440, Width: 200, Height: 200})
	}
}

func TestLayoutHalfSizeViewport(t *testing.T) {
	canvas := &recordingCanvas{}
	host := &fixedHost{width: 960, height: 540, dpr: 1}
	s := NewSurface(canvas, host)

	d := s.Dimensions()
	if d.Scale != 0.5 || d.Width != 1920 || d.Height != 1080 {
		t.Fatalf("dimensions = %+v", d)
	}

	parent := s.NewContainer(Options{Style: Style{Position: centered()}})
	parent.Add(box(s, 200, 200))
	s.Add(parent)
	assertBounds(t, parent, Rectangle{X: 860, Y: 440, Width: 200, Height: 200})

	if canvas.lastWidth != 960 || canvas.lastHeight != 540 {
		t.Errorf("canvas reset to %dx%d; want 960x540", canvas.lastWidth, canvas.lastHeight)
	}
}

func TestLayoutStackedChildren(t *testing.T) {
	tests := []struct {
		name    string
		align   Align
		sizes   [][2]float64
		margin  float64
		wantW   float64
		wantH   float64
		stacked func(prev, cur Rectangle, margin float64) bool
	}{
		{
			name:   "Horizontal without margin",
			align:  AlignHorizontal,
			sizes:  [][2]float64{{100, 50}, {30, 80}, {70, 20}},
			wantW:  200,
			wantH:  80,
			stacked: func(prev, cur Rectangle, m float64) bool {
				return cur.X == prev.X2()+m && cur.Y == prev.Y
			},
		},
		{
			name:   "Horizontal with margin",
			align:  AlignHorizontal,
			sizes:  [][2]float64{{100, 50}, {30, 80}, {70, 20}},
			margin: 10,
			wantW:  220,
			wantH:  80,
			stacked: func(prev, cur Rectangle, m float64) bool {
				return cur.X == prev.X2()+m && cur.Y == prev.Y
			},
		},
		{
			name:   "Vertical with margin",
			align:  AlignVertical,
			sizes:  [][2]float64{{100, 50}, {30, 80}, {70, 20}},
			margin: 5,
			wantW:  100,
			wantH:  160,
			stacked: func(prev, cur Rectangle, m float64) bool {
				return cur.Y == prev.Y2()+m && cur.X == prev.X
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSurface(t)
			parent := s.NewContainer(Options{X1: 10, Y1: 20, Style: Style{Align: tt.align}})
			var children []*Container
			for _, size := range tt.sizes {
				c := s.NewContainer(Options{
					Width: size[0], Height: size[1],
					Style: Style{MarginRight: Float(tt.margin), MarginBottom: Float(tt.margin)},
				})
				children = append(children, c)
				parent.Add(c)
			}
			s.Add(parent)

			b := parent.Bounds()
			if b.Width != tt.wantW || b.Height != tt.wantH {
				t.Errorf("parent size = %gx%g; want %gx%g", b.Width, b.Height, tt.wantW, tt.wantH)
			}
			if b.X != 10 || b.Y != 20 {
				t.Errorf("parent origin = (%g, %g); want (10, 20)", b.X, b.Y)
			}
			if first := children[0].Bounds(); first.X != b.X || first.Y != b.Y {
				t.Errorf("first child at (%g, %g); want parent anchor", first.X, first.Y)
			}
			for i := 1; i < len(children); i++ {
				prev, cur := children[i-1].Bounds(), children[i].Bounds()
				if !tt.stacked(prev, cur, tt.margin) {
					t.Errorf("child %d at %+v does not follow %+v", i, cur, prev)
				}
			}
		})
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	s, _, _ := newTestSurface(t)
	parent := s.NewContainer(Options{Width: 10, Height: 10, Style: Style{Position: centered()}})
	inner := s.NewContainer(Options{Style: Style{Align: AlignVertical}})
	inner.Add(box(s, 40, 40))
	inner.Add(box(s, 60, 20))
	parent.Add(inner)
	parent.Add(box(s, 100, 100))
	s.Add(parent)

	snapshot := func() []Rectangle {
		var out []Rectangle
		var walk func(c *Container)
		walk = func(c *Container) {
			out = append(out, c.Bounds())
			for _, child := range c.Children() {
				walk(child)
			}
		}
		for _, r := range s.Roots() {
			walk(r)
		}
		return out
	}

	first := snapshot()
	s.Resize()
	s.Resize()
	second := snapshot()

	if len(first) != len(second) {
		t.Fatalf("tree changed size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("box %d changed from %+v to %+v", i, first[i], second[i])
		}
		if second[i].Width < 0 || second[i].Height < 0 {
			t.Errorf("box %d has negative size %+v", i, second[i])
		}
	}
	// base 10 plus inner (60 wide) plus 100
	assertBounds(t, parent, Rectangle{X: 1920/2 - 170/2, Y: 1080/2 - 100/2, Width: 170, Height: 100})
}

func TestLayoutNestedChildrenFollowParent(t *testing.T) {
	s, _, _ := newTestSurface(t)
	root := s.NewContainer(Options{X1: 100, Y1: 50})
	first := box(s, 30, 30)
	inner := s.NewContainer(Options{Style: Style{Align: AlignVertical}})
	a, b := box(s, 20, 10), box(s, 20, 15)
	inner.Add(a)
	inner.Add(b)
	root.Add(first)
	root.Add(inner)
	s.Add(root)

	assertBounds(t, inner, Rectangle{X: 130, Y: 50, Width: 20, Height: 25})
	assertBounds(t, a, Rectangle{X: 130, Y: 50, Width: 20, Height: 10})
	assertBounds(t, b, Rectangle{X: 130, Y: 60, Width: 20, Height: 15})
}

func TestLayoutPositionKeywords(t *testing.T) {
	tests := []struct {
		name  string
		pos   *Position
		wantX float64
		wantY float64
	}{
		{
			name:  "Right and bottom including box",
			pos:   &Position{Horizontal: &AxisAlign{Align: "right", IncludeBox: true}, Vertical: &AxisAlign{Align: "bottom", IncludeBox: true}},
			wantX: 1820, wantY: 1030,
		},
		{
			name:  "Right and bottom excluding box",
			pos:   &Position{Horizontal: &AxisAlign{Align: "right"}, Vertical: &AxisAlign{Align: "bottom"}},
			wantX: 1920, wantY: 1080,
		},
		{
			name:  "Middle excluding box anchors the origin",
			pos:   &Position{Horizontal: &AxisAlign{Align: "middle"}, Vertical: &AxisAlign{Align: "middle"}},
			wantX: 960, wantY: 540,
		},
		{
			name:  "Unknown keywords fall back to left and top",
			pos:   &Position{Horizontal: &AxisAlign{Align: "centre", IncludeBox: true}, Vertical: &AxisAlign{Align: "up"}},
			wantX: 0, wantY: 0,
		},
		{
			name:  "Missing axis keeps the authored coordinate",
			pos:   &Position{Horizontal: &AxisAlign{Align: "left"}},
			wantX: 0, wantY: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSurface(t)
			parent := s.NewContainer(Options{X1: 3, Y1: 7, Style: Style{Position: tt.pos}})
			parent.Add(box(s, 100, 50))
			s.Add(parent)

			b := parent.Bounds()
			if b.X != tt.wantX || b.Y != tt.wantY {
				t.Errorf("origin = (%g, %g); want (%g, %g)", b.X, b.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLayoutPositionedLeaf(t *testing.T) {
	s, _, _ := newTestSurface(t)
	leaf := s.NewContainer(Options{Width: 100, Height: 50, Style: Style{Position: centered()}})
	s.Add(leaf)

	assertBounds(t, leaf, Rectangle{X: 910, Y: 515, Width: 100, Height: 50})
}

func TestLayoutOffsetAfterAlignment(t *testing.T) {
	s, _, _ := newTestSurface(t)
	parent := s.NewContainer(Options{OffsetX: 15, OffsetY: -5, Style: Style{Position: centered()}})
	child := box(s, 200, 200)
	parent.Add(child)
	s.Add(parent)

	assertBounds(t, parent, Rectangle{X: 875, Y: 435, Width: 200, Height: 200})
	assertBounds(t, child, Rectangle{X: 875, Y: 435, Width: 200, Height: 200})
}

func TestLayoutNoCrossAxisCentering(t *testing.T) {
	s, _, _ := newTestSurface(t)
	parent := s.NewContainer(Options{})
	tall, short := box(s, 10, 100), box(s, 10, 20)
	parent.Add(tall)
	parent.Add(short)
	s.Add(parent)

	if short.Bounds().Y != 0 {
		t.Errorf("short child y = %g; want 0 (top aligned)", short.Bounds().Y)
	}
	if parent.Bounds().Height != 100 {
		t.Errorf("parent height = %g; want 100", parent.Bounds().Height)
	}
}

func TestLayoutBackgroundImage(t *testing.T) {
	images := stubImages{}
	s, _, _ := newTestSurface(t, WithImages(images))

	c := s.NewContainer(Options{Width: 10, Height: 10, Style: Style{Image: &ImageStyle{Src: "tile.png"}}})
	s.Add(c)
	assertBounds(t, c, Rectangle{Width: 10, Height: 10})

	img := images["tile.png"]
	img.width, img.height, img.loaded = 64, 32, true
	s.ImageLoaded("tile.png")
	s.Frame()
	assertBounds(t, c, Rectangle{Width: 64, Height: 32})

	scaled := s.NewContainer(Options{Style: Style{Image: &ImageStyle{Src: "tile.png", ScaleTo: &Size{Width: 16, Height: 16}}}})
	s.Add(scaled)
	assertBounds(t, scaled, Rectangle{Width: 16, Height: 16})
}

func TestLayoutHoverStyleRelayout(t *testing.T) {
	s, _, _ := newTestSurface(t)
	parent := s.NewContainer(Options{})
	grow := s.NewContainer(Options{
		Width: 100, Height: 100,
		Style: Style{MarginRight: Float(0)},
		Hover: &Event{Style: &Style{MarginRight: Float(50)}},
	})
	next := box(s, 100, 100)
	parent.Add(grow)
	parent.Add(next)
	s.Add(parent)

	if next.Bounds().X != 100 {
		t.Fatalf("next x = %g; want 100", next.Bounds().X)
	}

	s.PointerMove(at(10, 10))
	s.Render()
	if next.Bounds().X != 150 {
		t.Errorf("next x after hover = %g; want 150", next.Bounds().X)
	}
	if parent.Bounds().Width != 250 {
		t.Errorf("parent width after hover = %g; want 250", parent.Bounds().Width)
	}
}
