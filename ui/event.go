package ui

// Event configures how a container reacts to hover, press or click.
type Event struct {
	// Style is merged over the base style while the event is active.
	Style *Style
	// Remove detaches the container when the event fires.
	Remove bool
	// Callback runs after the event fired. Nil callbacks are skipped.
	Callback func(*Container)
}

func (e *Event) fire(c *Container) {
	if e == nil || e.Callback == nil {
		return
	}
	e.Callback(c)
}

// PointerEvent is a pointer notification in page coordinates. It is either a
// Mouse or a Touch; the kind is decided once where host events are translated.
type PointerEvent interface {
	pagePosition() (x, y float64)
}

// Mouse is a mouse pointer event.
type Mouse struct {
	X, Y float64
}

// Touch is a single touch contact. ID stays stable for the contact's lifetime.
type Touch struct {
	X, Y float64
	ID   int
}

func (m Mouse) pagePosition() (float64, float64) { return m.X, m.Y }

func (t Touch) pagePosition() (float64, float64) { return t.X, t.Y }
