// Package nav implements keyboard navigation over an ordered set of map
// markers. Tab and Shift+Tab walk the set one marker at a time, selecting as
// they go; Enter activates the selected marker. The controller keeps at most
// one marker selected, recenters the map on each selection, and tells the
// container whether a Tab was consumed or should be allowed to move focus
// onward.
package nav

import "github.com/NYUeServ/marker-navigation/geo"

type (
	// Marker is a placed point of interest on the map. Implementations are
	// owned by the host view; the controller only flips icons, recenters on
	// positions, and delivers activations.
	Marker interface {
		Icon() string
		SetIcon(icon string)
		Position() geo.Point
		Activate()
	}

	// Map is the viewport the controller recenters when a marker is
	// selected.
	Map interface {
		SetCenter(p geo.Point)
	}

	// Icons holds the shared selected/deselected glyphs. An empty value
	// means "leave the marker's icon alone".
	Icons struct {
		Selected   string
		Deselected string
	}
)

// Key identifies the keys the controller reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyTab
	KeyEnter
)

// KeyEvent is one key-down as seen by the container.
type KeyEvent struct {
	Key   Key
	Shift bool
	// ContainerFocused reports whether the focusable map container held
	// focus when the key went down. Tab presses outside the container arm
	// the entry end; presses inside step the cursor.
	ContainerFocused bool
}

// Direction of a cursor step.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// edge marks which end of the marker sequence the cursor is parked at while
// no marker is selected. Entering the set starts from that end.
type edge int

const (
	front edge = iota // before marker 0; forward entry starts at 0
	back              // past the last marker; backward entry starts at len-1
)

// position is the cursor state: either outside the marker set, parked at one
// end, or inside it on a concrete index.
type position struct {
	inside bool
	index  int
	at     edge
}

func outsideAt(e edge) position { return position{at: e} }
func insideAt(i int) position   { return position{inside: true, index: i} }

// Activation is the live Enter subscription for the selected marker. The
// controller holds at most one; Detach is idempotent and a detached handle
// never fires again.
type Activation struct {
	marker   Marker
	detached bool
}

// Fire delivers the synthetic click to the marker.
func (a *Activation) Fire() {
	if a == nil || a.detached {
		return
	}
	a.marker.Activate()
}

// Detach disables the activation. Safe on nil and safe to repeat.
func (a *Activation) Detach() {
	if a != nil {
		a.detached = true
	}
}

// Controller steps a selection cursor across markers in response to key
// events. Each map view owns its own Controller; there is no shared state
// between instances.
type Controller struct {
	view     Map
	markers  []Marker
	icons    Icons
	distinct bool
	captured []string
	pos      position
	act      *Activation
}

// New builds a controller over markers. When distinct is set, each marker's
// current icon is captured up front so deselection restores the marker's own
// look instead of the shared deselected glyph.
func New(view Map, markers []Marker, icons Icons, distinct bool) *Controller {
	c := &Controller{
		view:     view,
		icons:    icons,
		distinct: distinct,
		pos:      outsideAt(front),
	}
	c.bind(markers)
	return c
}

func (c *Controller) bind(markers []Marker) {
	c.markers = markers
	c.captured = nil
	if c.distinct {
		c.captured = make([]string, len(markers))
		for i, m := range markers {
			c.captured[i] = m.Icon()
		}
	}
}

// HandleKey applies one key-down and reports whether the event was consumed.
// An unconsumed Tab means the cursor stepped off the end of the marker set
// and focus should be allowed to move on natively.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyTab:
		if !ev.ContainerFocused {
			// Arm the entry end so the first Tab into the container
			// starts at the correct marker for the direction of
			// travel.
			if ev.Shift {
				c.pos = outsideAt(back)
			} else {
				c.pos = outsideAt(front)
			}
			return false
		}
		if ev.Shift {
			return c.step(Backward)
		}
		return c.step(Forward)

	case KeyEnter:
		if ev.ContainerFocused && c.act != nil {
			c.act.Fire()
			return true
		}
	}
	return false
}

// cursor flattens the position to the numeric index used for stepping:
// -1 when parked before the set, len(markers) when parked past it.
func (c *Controller) cursor() int {
	switch {
	case c.pos.inside:
		return c.pos.index
	case c.pos.at == back:
		return len(c.markers)
	default:
		return -1
	}
}

// step advances the cursor by dir. The entering marker is selected, then the
// vacating one is deselected, then the new position is committed. The
// vacating index travels as an explicit argument so the icon restore never
// reads a cursor that has already moved.
func (c *Controller) step(dir Direction) bool {
	vacating := c.cursor()
	if len(c.markers) == 0 {
		vacating = 0
	}
	entering := vacating + int(dir)

	next := c.selectMarker(entering)
	c.deselectMarker(vacating, c.act)
	c.act = next

	switch {
	case entering < 0:
		c.pos = outsideAt(front)
		return false
	case entering >= len(c.markers):
		c.pos = outsideAt(back)
		return false
	default:
		c.pos = insideAt(entering)
		return true
	}
}

// selectMarker marks markers[i] selected, recenters the view on it, and
// returns the activation for it. An out-of-range index is a no-op returning
// nil; that is how the set boundaries work.
func (c *Controller) selectMarker(i int) *Activation {
	if i < 0 || i >= len(c.markers) {
		return nil
	}
	m := c.markers[i]
	if c.icons.Selected != "" {
		m.SetIcon(c.icons.Selected)
	}
	if c.view != nil {
		c.view.SetCenter(m.Position())
	}
	return &Activation{marker: m}
}

// deselectMarker restores the icon of markers[i] and detaches act. i is the
// index being vacated; out of range is a no-op apart from the detach.
func (c *Controller) deselectMarker(i int, act *Activation) {
	act.Detach()
	if i < 0 || i >= len(c.markers) {
		return
	}
	m := c.markers[i]
	if c.distinct && i < len(c.captured) {
		m.SetIcon(c.captured[i])
	} else if c.icons.Deselected != "" {
		m.SetIcon(c.icons.Deselected)
	}
}

// Blur clears the selection when the container loses focus by some means
// other than tabbing off the end, e.g. the user switched views.
func (c *Controller) Blur() {
	if c.pos.inside {
		c.deselectMarker(c.pos.index, c.act)
		c.act = nil
	}
	c.pos = outsideAt(front)
}

// Rebind replaces the marker set after markers were added, removed, or
// reloaded. The live activation is detached first so no subscription
// survives pointing at a marker from the old set, and the cursor parks
// outside the new set.
func (c *Controller) Rebind(markers []Marker) {
	c.act.Detach()
	c.act = nil
	c.bind(markers)
	c.pos = outsideAt(front)
}

// Selected returns the selected marker and its index, if any.
func (c *Controller) Selected() (Marker, int, bool) {
	if !c.pos.inside {
		return nil, 0, false
	}
	return c.markers[c.pos.index], c.pos.index, true
}

// Len returns the number of markers currently bound.
func (c *Controller) Len() int {
	return len(c.markers)
}
