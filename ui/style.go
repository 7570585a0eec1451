package ui

// Align selects the stacking axis of a container's children.
type Align string

const (
	AlignHorizontal Align = "horizontal"
	AlignVertical   Align = "vertical"
)

// Style is the authored look of a container. Empty strings and nil pointers
// mean "not set", so an event overlay only overrides what it names.
type Style struct {
	Fill        string   `yaml:"fill,omitempty" toml:"fill,omitempty"`
	Stroke      string   `yaml:"stroke,omitempty" toml:"stroke,omitempty"`
	StrokeWidth *float64 `yaml:"strokeWidth,omitempty" toml:"strokeWidth,omitempty"`
	Opacity     *float64 `yaml:"opacity,omitempty" toml:"opacity,omitempty"`
	// Darken is the density (0..1) of a black overlay drawn on top.
	Darken *float64 `yaml:"darken,omitempty" toml:"darken,omitempty"`
	Cursor Cursor   `yaml:"cursor,omitempty" toml:"cursor,omitempty"`

	Align        Align    `yaml:"align,omitempty" toml:"align,omitempty"`
	MarginRight  *float64 `yaml:"marginRight,omitempty" toml:"marginRight,omitempty"`
	MarginBottom *float64 `yaml:"marginBottom,omitempty" toml:"marginBottom,omitempty"`

	Text     *Text       `yaml:"text,omitempty" toml:"text,omitempty"`
	Position *Position   `yaml:"position,omitempty" toml:"position,omitempty"`
	Image    *ImageStyle `yaml:"image,omitempty" toml:"image,omitempty"`
}

// Text configures the label drawn inside a container.
type Text struct {
	// Content is the drawn text, "ID" is replaced with the container id.
	Content string `yaml:"content,omitempty" toml:"content,omitempty"`
	// Font uses the CSS shorthand, e.g. "bold 40px Arial".
	Font        string        `yaml:"font,omitempty" toml:"font,omitempty"`
	Fill        string        `yaml:"fill,omitempty" toml:"fill,omitempty"`
	Stroke      string        `yaml:"stroke,omitempty" toml:"stroke,omitempty"`
	StrokeWidth *float64      `yaml:"strokeWidth,omitempty" toml:"strokeWidth,omitempty"`
	Position    *TextPosition `yaml:"position,omitempty" toml:"position,omitempty"`
}

// TextPosition anchors text relative to its container box.
type TextPosition struct {
	Horizontal string `yaml:"horizontal,omitempty" toml:"horizontal,omitempty"` // left, middle, right
	Vertical   string `yaml:"vertical,omitempty" toml:"vertical,omitempty"`     // top, middle, bottom
}

// Position anchors a container against the logical viewport.
type Position struct {
	Horizontal *AxisAlign `yaml:"horizontal,omitempty" toml:"horizontal,omitempty"`
	Vertical   *AxisAlign `yaml:"vertical,omitempty" toml:"vertical,omitempty"`
}

// AxisAlign is the alignment on one axis. With IncludeBox the container's own
// size is taken into account when centering or right/bottom anchoring.
type AxisAlign struct {
	Align      string `yaml:"align" toml:"align"`
	IncludeBox bool   `yaml:"includeBox,omitempty" toml:"includeBox,omitempty"`
}

// ImageStyle draws an image at the container origin.
type ImageStyle struct {
	Src     string `yaml:"src" toml:"src"`
	Scale   *Vec   `yaml:"scale,omitempty" toml:"scale,omitempty"`
	ScaleTo *Size  `yaml:"scaleTo,omitempty" toml:"scaleTo,omitempty"`
}

type Vec struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Float returns a pointer to v, handy for optional style fields.
func Float(v float64) *float64 {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}

// Clone returns a deep copy of s. A nil style clones to an empty one.
func (s *Style) Clone() Style {
	if s == nil {
		return Style{}
	}
	out := *s
	out.StrokeWidth = cloneFloat(s.StrokeWidth)
	out.Opacity = cloneFloat(s.Opacity)
	out.Darken = cloneFloat(s.Darken)
	out.MarginRight = cloneFloat(s.MarginRight)
	out.MarginBottom = cloneFloat(s.MarginBottom)
	out.Text = s.Text.clone()
	out.Position = s.Position.clone()
	out.Image = s.Image.clone()
	return out
}

func (t *Text) clone() *Text {
	if t == nil {
		return nil
	}
	out := *t
	out.StrokeWidth = cloneFloat(t.StrokeWidth)
	if t.Position != nil {
		p := *t.Position
		out.Position = &p
	}
	return &out
}

func (p *Position) clone() *Position {
	if p == nil {
		return nil
	}
	out := Position{}
	if p.Horizontal != nil {
		h := *p.Horizontal
		out.Horizontal = &h
	}
	if p.Vertical != nil {
		v := *p.Vertical
		out.Vertical = &v
	}
	return &out
}

func (i *ImageStyle) clone() *ImageStyle {
	if i == nil {
		return nil
	}
	out := *i
	if i.Scale != nil {
		sc := *i.Scale
		out.Scale = &sc
	}
	if i.ScaleTo != nil {
		st := *i.ScaleTo
		out.ScaleTo = &st
	}
	return &out
}

// Merge copies every field set in patch over s. Nested records merge field
// by field; the patch is never aliased.
func (s *Style) Merge(patch *Style) {
	if patch == nil {
		return
	}
	if patch.Fill != "" {
		s.Fill = patch.Fill
	}
	if patch.Stroke != "" {
		s.Stroke = patch.Stroke
	}
	if patch.StrokeWidth != nil {
		s.StrokeWidth = cloneFloat(patch.StrokeWidth)
	}
	if patch.Opacity != nil {
		s.Opacity = cloneFloat(patch.Opacity)
	}
	if patch.Darken != nil {
		s.Darken = cloneFloat(patch.Darken)
	}
	if patch.Cursor != "" {
		s.Cursor = patch.Cursor
	}
	if patch.Align != "" {
		s.Align = patch.Align
	}
	if patch.MarginRight != nil {
		s.MarginRight = cloneFloat(patch.MarginRight)
	}
	if patch.MarginBottom != nil {
		s.MarginBottom = cloneFloat(patch.MarginBottom)
	}

	if patch.Text != nil {
		if s.Text == nil {
			s.Text = &Text{}
		}
		s.Text.merge(patch.Text)
	}
	if patch.Position != nil {
		if s.Position == nil {
			s.Position = &Position{}
		}
		s.Position.merge(patch.Position)
	}
	if patch.Image != nil {
		if s.Image == nil {
			s.Image = &ImageStyle{}
		}
		s.Image.merge(patch.Image)
	}
}

func (t *Text) merge(patch *Text) {
	if patch.Content != "" {
		t.Content = patch.Content
	}
	if patch.Font != "" {
		t.Font = patch.Font
	}
	if patch.Fill != "" {
		t.Fill = patch.Fill
	}
	if patch.Stroke != "" {
		t.Stroke = patch.Stroke
	}
	if patch.StrokeWidth != nil {
		t.StrokeWidth = cloneFloat(patch.StrokeWidth)
	}
	if patch.Position != nil {
		if t.Position == nil {
			t.Position = &TextPosition{}
		}
		if patch.Position.Horizontal != "" {
			t.Position.Horizontal = patch.Position.Horizontal
		}
		if patch.Position.Vertical != "" {
			t.Position.Vertical = patch.Position.Vertical
		}
	}
}

func (p *Position) merge(patch *Position) {
	if patch.Horizontal != nil {
		h := *patch.Horizontal
		p.Horizontal = &h
	}
	if patch.Vertical != nil {
		v := *patch.Vertical
		p.Vertical = &v
	}
}

func (i *ImageStyle) merge(patch *ImageStyle) {
	if patch.Src != "" {
		i.Src = patch.Src
	}
	if patch.Scale != nil {
		sc := *patch.Scale
		i.Scale = &sc
	}
	if patch.ScaleTo != nil {
		st := *patch.ScaleTo
		i.ScaleTo = &st
	}
}

// vertical reports whether children stack along the y axis.
func (s *Style) vertical() bool {
	return s.Align == AlignVertical
}
