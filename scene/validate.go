package scene

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/OpticalFlyer/canvasui/ui"
)

// Validate reports every problem in sc at once. Event actions must be keys
// of actions.
func Validate(sc *Scene, actions Actions) error {
	if sc == nil {
		return fmt.Errorf("no scene")
	}
	v := &validator{scene: sc, actions: actions, names: make(map[string]string)}

	if vb := sc.Viewbox; vb != nil && (vb.Width <= 0 || vb.Height <= 0) {
		v.fail("viewbox", "size %gx%g must be positive", vb.Width, vb.Height)
	}
	for name, t := range sc.Templates {
		path := fmt.Sprintf("templates.%s", name)
		if t.Template != "" {
			v.fail(path, "templates cannot use other templates")
		}
		v.node(path, t, false)
	}
	if len(sc.Roots) == 0 {
		v.fail("roots", "scene has no containers")
	}
	for i, n := range sc.Roots {
		v.node(fmt.Sprintf("roots[%d]", i), n, true)
	}

	if sp := sc.Spawn; sp != nil {
		if _, ok := v.names[sp.Target]; !ok {
			v.fail("spawn.target", "no container named %q", sp.Target)
		}
		if _, ok := sc.Templates[sp.Template]; !ok {
			v.fail("spawn.template", "unknown template %q", sp.Template)
		}
	}
	return v.err
}

type validator struct {
	scene   *Scene
	actions Actions
	// container name to the path that declared it
	names map[string]string
	err   error
}

func (v *validator) fail(path, format string, args ...any) {
	v.err = multierr.Append(v.err, fmt.Errorf("%s: %s", path, fmt.Sprintf(format, args...)))
}

func (v *validator) node(path string, n Node, named bool) {
	if n.Template != "" {
		if _, ok := v.scene.Templates[n.Template]; !ok {
			v.fail(path, "unknown template %q", n.Template)
		}
	}
	if n.Repeat < 0 {
		v.fail(path, "repeat %d is negative", n.Repeat)
	}
	if n.Width < 0 || n.Height < 0 {
		v.fail(path, "size %gx%g is negative", n.Width, n.Height)
	}
	if !named && n.Name != "" {
		v.fail(path, "containers inside templates cannot be named")
	}
	if named && n.Name != "" {
		if prev, dup := v.names[n.Name]; dup {
			v.fail(path, "name %q already used by %s", n.Name, prev)
		} else {
			v.names[n.Name] = path
		}
		if n.Repeat > 1 {
			v.fail(path, "named container %q cannot repeat", n.Name)
		}
	}

	v.style(path+".style", n.Style)
	// overlays may patch an image partially, the base style needs a source
	if n.Style != nil && n.Style.Image != nil && n.Style.Image.Src == "" && !v.templateHasImage(n.Template) {
		v.fail(path+".style", "image without src")
	}
	for kind, e := range map[string]*Event{"hover": n.Hover, "press": n.Press, "click": n.Click} {
		if e == nil {
			continue
		}
		v.style(fmt.Sprintf("%s.%s.style", path, kind), e.Style)
		if e.Action != "" {
			if _, ok := v.actions[e.Action]; !ok {
				v.fail(path+"."+kind, "unknown action %q", e.Action)
			}
		}
	}

	for i, child := range n.Children {
		v.node(fmt.Sprintf("%s.children[%d]", path, i), child, named)
	}
}

func (v *validator) style(path string, s *ui.Style) {
	if s == nil {
		return
	}
	switch s.Align {
	case "", ui.AlignHorizontal, ui.AlignVertical:
	default:
		v.fail(path, "align %q is neither horizontal nor vertical", s.Align)
	}
	for name, f := range map[string]*float64{"opacity": s.Opacity, "darken": s.Darken} {
		if f != nil && (*f < 0 || *f > 1) {
			v.fail(path, "%s %g is outside [0, 1]", name, *f)
		}
	}
}

func (v *validator) templateHasImage(name string) bool {
	t, ok := v.scene.Templates[name]
	return ok && t.Style != nil && t.Style.Image != nil && t.Style.Image.Src != ""
}
