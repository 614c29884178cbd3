// Package geo contains the coordinate types and viewport math for the map view.
package geo

import (
	"fmt"
	"math"
)

type (
	// Point is a position on the map in decimal degrees.
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}

	// Camera is the viewport onto the map: a center point plus the latitude
	// and longitude span covered by the visible grid. Setting the center is
	// how the map "pans", so the Camera doubles as the view the navigation
	// controller recenters on selection.
	Camera struct {
		center  Point
		spanLat float64
		spanLon float64
	}
)

const earthRadiusKm = 6371.0

func (p Point) String() string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lon)
}

// Distance returns the great-circle distance between two points in
// kilometers (haversine).
func Distance(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// NewCamera builds a camera centered on center, showing spanLat degrees of
// latitude and spanLon degrees of longitude. Non-positive spans fall back to
// a whole-world view.
func NewCamera(center Point, spanLat, spanLon float64) *Camera {
	if spanLat <= 0 {
		spanLat = 180
	}
	if spanLon <= 0 {
		spanLon = 360
	}
	return &Camera{
		center:  center,
		spanLat: spanLat,
		spanLon: spanLon,
	}
}

// SetCenter pans the viewport to p.
func (c *Camera) SetCenter(p Point) {
	c.center = p
}

func (c *Camera) Center() Point {
	return c.center
}

// Project maps a point to a cell in a width×height character grid. Rows grow
// southward so row 0 is the top of the viewport. ok is false when the point
// falls outside the visible span.
func (c *Camera) Project(p Point, width, height int) (col, row int, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}

	dLat := p.Lat - c.center.Lat
	dLon := p.Lon - c.center.Lon

	col = int(math.Round((dLon/c.spanLon + 0.5) * float64(width-1)))
	row = int(math.Round((0.5 - dLat/c.spanLat) * float64(height-1)))

	if col < 0 || col >= width || row < 0 || row >= height {
		return 0, 0, false
	}
	return col, row, true
}
