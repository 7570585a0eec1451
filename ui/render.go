package ui

import (
	"strconv"

	"github.com/OpticalFlyer/canvasui/canvas/css"
)

// idToken is the text content replaced with the container id.
const idToken = "ID"

// textHeightRatio approximates glyph height from the numeric font size.
const textHeightRatio = 0.7

// render paints c and then its children, children on top.
func (c *Container) render() {
	s := c.surface
	c.setHovering(c.hover != nil && c.contains(s.pointer))

	if c.hovering.Current() && c.hover.Remove {
		s.Remove(c)
	}
	styles := &c.merged
	ctx := s.canvas

	ctx.Save()
	if styles.Opacity != nil {
		ctx.SetGlobalAlpha(*styles.Opacity)
	}
	if styles.Fill != "" {
		c.fill(styles.Fill)
	}
	if styles.Image != nil && styles.Image.Src != "" {
		c.drawImage(styles.Image)
	}
	if styles.Stroke != "" {
		width := 1.0
		if styles.StrokeWidth != nil {
			width = *styles.StrokeWidth
		}
		c.stroke(styles.Stroke, width)
	}
	if styles.Darken != nil && *styles.Darken > 0 {
		ctx.SetGlobalAlpha(*styles.Darken)
		c.fill("black")
	}
	ctx.Restore()

	if styles.Text != nil && styles.Text.Content != "" {
		c.drawText(styles.Text)
	}

	if (c.hovering.Current() || c.holding.Current()) && styles.Cursor == CursorPointer {
		s.cursor = CursorPointer
	}

	// Children may be removed while they render
	for _, child := range c.Children() {
		child.render()
	}
}

func (c *Container) fill(color string) {
	ctx := c.surface.canvas
	ctx.SetFillStyle(color)
	ctx.FillRect(c.x1, c.y1, c.width, c.height)
}

// stroke draws the border inside the box.
func (c *Container) stroke(color string, width float64) {
	ctx := c.surface.canvas
	ctx.SetStrokeStyle(color)
	ctx.SetLineWidth(width)
	ctx.StrokeRect(c.x1+width/2, c.y1+width/2, c.width-width, c.height-width)
}

func (c *Container) drawImage(style *ImageStyle) {
	s := c.surface
	if s.images == nil {
		return
	}
	img := s.images.Image(style.Src)
	if img == nil || !img.Loaded() {
		return
	}
	w, h := img.Size()
	x, y := imageScale(style, w, h)
	if x == 0 || y == 0 {
		return
	}
	s.canvas.Save()
	s.canvas.Scale(x, y)
	s.canvas.DrawImage(img, c.x1/x, c.y1/y)
	s.canvas.Restore()
}

// imageScale returns the scale factors an image is drawn with.
func imageScale(style *ImageStyle, width, height int) (x, y float64) {
	x, y = 1, 1
	if style.Scale != nil {
		x *= style.Scale.X
		y *= style.Scale.Y
	}
	if style.ScaleTo != nil && width > 0 && height > 0 {
		x = style.ScaleTo.Width / float64(width)
		y = style.ScaleTo.Height / float64(height)
	}
	return x, y
}

func (c *Container) drawText(text *Text) {
	ctx := c.surface.canvas
	content := c.textContent(text.Content)

	ctx.SetFont(text.Font)
	x, y := c.textPosition(text, content)

	if text.Fill != "" {
		ctx.SetFillStyle(text.Fill)
		ctx.FillText(content, x, y)
	}
	if text.Stroke != "" {
		width := 1.0
		if text.StrokeWidth != nil {
			width = *text.StrokeWidth
		}
		ctx.SetLineWidth(width)
		ctx.SetStrokeStyle(text.Stroke)
		ctx.StrokeText(content, x, y)
	}
}

func (c *Container) textContent(content string) string {
	if content == idToken {
		return strconv.Itoa(c.id)
	}
	return content
}

// textPosition returns the baseline origin of the text inside the box.
func (c *Container) textPosition(text *Text, content string) (x, y float64) {
	if text.Position == nil {
		return c.x1, c.y1
	}
	box := c.Bounds()
	width := c.surface.canvas.MeasureText(content)
	height := FontSize(text.Font) * textHeightRatio

	switch text.Position.Horizontal {
	case "middle":
		x = box.X + box.Width/2 - width/2
	case "right":
		x = box.X2() - width
	default:
		x = box.X
	}

	switch text.Position.Vertical {
	case "middle":
		y = box.Y + box.Height/2 + height/2
	case "bottom":
		y = box.Y2()
	default:
		y = box.Y + height
	}
	return x, y
}

// FontSize returns the pixel size of a CSS font shorthand such as
// "bold 40px Arial", the same size the drawing context renders. It returns 0
// when no size is present.
func FontSize(font string) float64 {
	f, ok := css.ParseFont(font)
	if !ok {
		return 0
	}
	return f.Size
}
