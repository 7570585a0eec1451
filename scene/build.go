package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/OpticalFlyer/canvasui/proj"
	"github.com/OpticalFlyer/canvasui/ui"
)

// ErrNoSpawn is returned by Spawn for scenes without a spawn section.
var ErrNoSpawn = errors.New("scene has no spawn section")

// Actions maps action names used by events to callbacks.
type Actions map[string]func(*ui.Container)

// Built is a scene placed on a surface.
type Built struct {
	surface *ui.Surface
	scene   *Scene
	actions Actions
	named   map[string]*ui.Container
	roots   []*ui.Container
}

// LogicalViewbox returns the scene's viewbox, or the default one.
func (sc *Scene) LogicalViewbox() proj.Viewbox {
	if sc.Viewbox == nil {
		return proj.DefaultViewbox()
	}
	return proj.Viewbox{Width: sc.Viewbox.Width, Height: sc.Viewbox.Height}
}

// Build validates sc and adds its containers to s in document order.
func Build(s *ui.Surface, sc *Scene, actions Actions) (*Built, error) {
	if err := Validate(sc, actions); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	b := &Built{
		surface: s,
		scene:   sc,
		actions: actions,
		named:   make(map[string]*ui.Container),
	}
	for _, n := range sc.Roots {
		for _, c := range b.build(n, true) {
			s.Add(c)
			b.roots = append(b.roots, c)
		}
	}
	return b, nil
}

// Roots returns the root containers in document order.
func (b *Built) Roots() []*ui.Container { return slices.Clone(b.roots) }

// Container returns the container declared with name, or nil.
func (b *Built) Container(name string) *ui.Container { return b.named[name] }

// Spawn builds the spawn template and appends it to the spawn target.
func (b *Built) Spawn() (*ui.Container, error) {
	sp := b.scene.Spawn
	if sp == nil {
		return nil, ErrNoSpawn
	}
	target := b.named[sp.Target]
	if target == nil || !target.Attached() {
		return nil, fmt.Errorf("spawn target %q is not on the surface", sp.Target)
	}
	var first *ui.Container
	for _, c := range b.build(Node{Template: sp.Template}, false) {
		target.Add(c)
		if first == nil {
			first = c
		}
	}
	return first, nil
}

func (b *Built) build(n Node, register bool) []*ui.Container {
	n = b.scene.resolve(n)

	out := make([]*ui.Container, 0, max(n.Repeat, 1))
	for range max(n.Repeat, 1) {
		c := b.surface.NewContainer(ui.Options{
			X1: n.X1, Y1: n.Y1,
			OffsetX: n.OffsetX, OffsetY: n.OffsetY,
			Width: n.Width, Height: n.Height,
			Style: n.Style.Clone(),
			Hover: b.event(n.Hover),
			Press: b.event(n.Press),
			Click: b.event(n.Click),
		})
		for _, child := range n.Children {
			for _, cc := range b.build(child, register) {
				c.Add(cc)
			}
		}
		if register && n.Name != "" {
			b.named[n.Name] = c
		}
		out = append(out, c)
	}
	return out
}

func (b *Built) event(e *Event) *ui.Event {
	if e == nil {
		return nil
	}
	ev := &ui.Event{Remove: e.Remove}
	if e.Style != nil {
		st := e.Style.Clone()
		ev.Style = &st
	}
	if e.Action != "" {
		ev.Callback = b.actions[e.Action]
	}
	return ev
}

// resolve applies n on top of its template.
func (sc *Scene) resolve(n Node) Node {
	if n.Template == "" {
		return n
	}
	t, ok := sc.Templates[n.Template]
	if !ok {
		return n
	}

	out := t
	out.Name, out.Template, out.Repeat = n.Name, "", n.Repeat
	override(&out.X1, n.X1)
	override(&out.Y1, n.Y1)
	override(&out.OffsetX, n.OffsetX)
	override(&out.OffsetY, n.OffsetY)
	override(&out.Width, n.Width)
	override(&out.Height, n.Height)
	if n.Style != nil {
		st := t.Style.Clone()
		st.Merge(n.Style)
		out.Style = &st
	}
	if n.Hover != nil {
		out.Hover = n.Hover
	}
	if n.Press != nil {
		out.Press = n.Press
	}
	if n.Click != nil {
		out.Click = n.Click
	}
	out.Children = append(slices.Clone(t.Children), n.Children...)
	return out
}

func override(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
