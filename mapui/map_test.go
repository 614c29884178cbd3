package mapui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/NYUeServ/marker-navigation/cues"
	"github.com/NYUeServ/marker-navigation/feedmsg"
)

func testModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{Audio: cues.NewPlayer(true), SpanLat: 10, SpanLon: 20})
	return apply(t, m, MarkersMsg{Markers: []feedmsg.MarkerInfo{
		{Name: "Bobst Library", Lat: 40.7295, Lon: -73.9972, Icon: "⚑"},
		{Name: "Kimmel Center", Lat: 40.7291, Lon: -73.9980, Icon: "⌂"},
		{Name: "Silver Center", Lat: 40.7305, Lon: -73.9954, Icon: "✦"},
	}})
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func keyPress(typ tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: typ}
}

func TestTabWalksMarkersThenLeavesTheMap(t *testing.T) {
	m := testModel(t)
	require.Equal(t, mapFocus, m.focused)

	for i := 0; i < 3; i++ {
		m = apply(t, m, keyPress(tea.KeyTab))
		require.Equal(t, mapFocus, m.focused)
		_, idx, ok := m.ctrl.Selected()
		require.True(t, ok)
		require.Equal(t, i, idx)
		// Selection pans the camera to the marker.
		require.Equal(t, m.markers[idx].Position(), m.cam.Center())
	}

	// The fourth Tab steps off the end and focus moves to the actions bar.
	m = apply(t, m, keyPress(tea.KeyTab))
	require.Equal(t, actionsFocus, m.focused)
	_, _, ok := m.ctrl.Selected()
	require.False(t, ok)
}

func TestShiftTabReentersAtTheLastMarker(t *testing.T) {
	m := testModel(t)

	// Walk off the far end so focus sits on the actions bar.
	for i := 0; i < 4; i++ {
		m = apply(t, m, keyPress(tea.KeyTab))
	}
	require.Equal(t, actionsFocus, m.focused)

	// Shift+Tab outside the container arms backward entry and hands focus
	// back to the map.
	m = apply(t, m, keyPress(tea.KeyShiftTab))
	require.Equal(t, mapFocus, m.focused)
	_, _, ok := m.ctrl.Selected()
	require.False(t, ok)

	// The next Shift+Tab enters at the last marker.
	m = apply(t, m, keyPress(tea.KeyShiftTab))
	_, idx, ok := m.ctrl.Selected()
	require.True(t, ok)
	require.Equal(t, 2, idx)
}

func TestEnterOpensTheSelectedMarker(t *testing.T) {
	m := testModel(t)

	m = apply(t, m, keyPress(tea.KeyEnter))
	require.Empty(t, m.lastOpened, "no selection, nothing to open")

	m = apply(t, m, keyPress(tea.KeyTab))
	m = apply(t, m, keyPress(tea.KeyEnter))
	require.Equal(t, "Bobst Library", m.lastOpened)
}

func TestEscLeavesTheLayerAndClearsSelection(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, keyPress(tea.KeyTab))

	updated, cmd := m.Update(keyPress(tea.KeyEsc))
	m = updated.(Model)

	_, _, ok := m.ctrl.Selected()
	require.False(t, ok)

	require.NotNil(t, cmd)
	msg := cmd()
	left, ok := msg.(LeaveLayerMsg)
	require.True(t, ok)
	require.NoError(t, left.Err)
}

func TestSnapshotRebindDropsTheSelection(t *testing.T) {
	m := testModel(t)
	m = apply(t, m, keyPress(tea.KeyTab))
	m = apply(t, m, keyPress(tea.KeyTab))

	m = apply(t, m, MarkersMsg{Markers: []feedmsg.MarkerInfo{
		{Name: "Washington Square Arch", Lat: 40.7308, Lon: -73.9973},
	}})

	_, _, ok := m.ctrl.Selected()
	require.False(t, ok, "selection must not point into the old set")
	require.Len(t, m.markers, 1)
	require.Equal(t, 1, m.ctrl.Len())

	// Navigation works over the new set.
	m = apply(t, m, keyPress(tea.KeyTab))
	_, idx, ok := m.ctrl.Selected()
	require.True(t, ok)
	require.Zero(t, idx)
	require.Equal(t, "Washington Square Arch", m.markers[idx].Name)
}
