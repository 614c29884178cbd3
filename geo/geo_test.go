package geo_test

import (
	"testing"

	"github.com/NYUeServ/marker-navigation/geo"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	nyc := geo.Point{Lat: 40.7128, Lon: -74.0060}
	la := geo.Point{Lat: 34.0522, Lon: -118.2437}

	got := geo.Distance(nyc, la)
	// Mapping services report ~3936 km.
	require.InDelta(t, 3936, got, 10)

	require.Zero(t, geo.Distance(nyc, nyc))
}

func TestCameraProject(t *testing.T) {
	cam := geo.NewCamera(geo.Point{Lat: 40, Lon: -74}, 10, 20)

	t.Run("center lands in the middle cell", func(t *testing.T) {
		col, row, ok := cam.Project(geo.Point{Lat: 40, Lon: -74}, 73, 19)
		require.True(t, ok)
		require.Equal(t, 36, col)
		require.Equal(t, 9, row)
	})

	t.Run("north of center is a lower row", func(t *testing.T) {
		_, centerRow, _ := cam.Project(geo.Point{Lat: 40, Lon: -74}, 73, 19)
		_, northRow, ok := cam.Project(geo.Point{Lat: 42, Lon: -74}, 73, 19)
		require.True(t, ok)
		require.Less(t, northRow, centerRow)
	})

	t.Run("outside the span is not visible", func(t *testing.T) {
		_, _, ok := cam.Project(geo.Point{Lat: 40, Lon: -120}, 73, 19)
		require.False(t, ok)
	})

	t.Run("panning moves the visible window", func(t *testing.T) {
		cam := geo.NewCamera(geo.Point{}, 10, 20)
		target := geo.Point{Lat: 40, Lon: -74}

		_, _, ok := cam.Project(target, 73, 19)
		require.False(t, ok)

		cam.SetCenter(target)
		col, row, ok := cam.Project(target, 73, 19)
		require.True(t, ok)
		require.Equal(t, 36, col)
		require.Equal(t, 9, row)
		require.Equal(t, target, cam.Center())
	})
}
