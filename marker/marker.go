// Package marker provides the concrete map marker rendered by the map view.
package marker

import (
	"github.com/google/uuid"

	"github.com/NYUeServ/marker-navigation/geo"
)

// Marker is a point of interest placed on the map. The icon is the glyph
// drawn in the viewport cell. OnActivate receives the synthetic click when
// the marker is activated from the keyboard.
type Marker struct {
	ID   uuid.UUID
	Name string

	pos  geo.Point
	icon string

	OnActivate func(*Marker)
}

func New(name string, pos geo.Point, icon string) *Marker {
	return &Marker{
		ID:   uuid.New(),
		Name: name,
		pos:  pos,
		icon: icon,
	}
}

func (m *Marker) Icon() string {
	return m.icon
}

func (m *Marker) SetIcon(icon string) {
	m.icon = icon
}

func (m *Marker) Position() geo.Point {
	return m.pos
}

// Activate delivers a synthetic click to the marker.
func (m *Marker) Activate() {
	if m.OnActivate != nil {
		m.OnActivate(m)
	}
}
