// Package mapui renders one marker layer in an ASCII viewport and hosts the
// keyboard navigation across its markers. Tab and Shift+Tab walk the markers
// while the map holds focus; stepping off either end hands focus to the
// actions bar, the container's native Tab neighbour.
package mapui

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
	"golang.org/x/term"

	"github.com/NYUeServ/marker-navigation/cues"
	"github.com/NYUeServ/marker-navigation/feedmsg"
	"github.com/NYUeServ/marker-navigation/geo"
	"github.com/NYUeServ/marker-navigation/keymap"
	"github.com/NYUeServ/marker-navigation/marker"
	"github.com/NYUeServ/marker-navigation/mnerr"
	"github.com/NYUeServ/marker-navigation/nav"
	"github.com/NYUeServ/marker-navigation/styles"
)

const (
	mapFocus focused = iota
	actionsFocus
	// Don't forget to update Model.availableFocusStates if more targets are
	// added here.
)

type (
	// ConnectedMsg delivers the feed socket after a layer is opened.
	ConnectedMsg struct {
		WS      *websocket.Conn
		LayerID string
	}

	// LeaveLayerMsg is sent when the user backs out of the layer.
	LeaveLayerMsg struct {
		Err error
	}

	// MarkersMsg replaces the marker set. The feed produces one per
	// snapshot; hosts whose marker set changed by other means can send it
	// directly to re-bind the navigation.
	MarkersMsg struct {
		Markers []feedmsg.MarkerInfo
	}

	connectAckMsg struct {
		layerName string
	}

	focused int

	// inbox collects the marker opened during a synchronous activation so
	// Update can report it after the controller returns.
	inbox struct {
		opened *marker.Marker
	}

	Options struct {
		// DistinctIcons restores each marker's own icon on deselect
		// instead of the shared deselected glyph.
		DistinctIcons bool
		Audio         cues.Player
		Center        geo.Point
		SpanLat       float64
		SpanLon       float64
	}

	Model struct {
		// Websocket connection for the current layer feed
		socket    *websocket.Conn
		layerID   string
		layerName string

		cam     *geo.Camera
		markers []*marker.Marker
		ctrl    *nav.Controller
		opened  *inbox

		// Element currently with focus
		focused focused
		// Number of available focus targets
		availableFocusStates int

		keys  keymap.Mapping
		help  help.Model
		audio cues.Player

		lastOpened string

		log *log.Logger
	}
)

// Icons used when the layer does not bring marker-specific glyphs.
var defaultIcons = nav.Icons{Selected: "◉", Deselected: "●"}

func New(opts Options) Model {
	cam := geo.NewCamera(opts.Center, opts.SpanLat, opts.SpanLon)
	return Model{
		cam:    cam,
		ctrl:   nav.New(cam, nil, defaultIcons, opts.DistinctIcons),
		opened: &inbox{},

		focused: mapFocus,
		// If more focus targets are added, update number of available states
		availableFocusStates: 2,

		keys:  keymap.DefaultMapping,
		help:  help.New(),
		audio: opts.Audio,

		log: log.Default(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.GoBack):
			// Leaving the layer is a focus loss: no selection survives it.
			m.ctrl.Blur()
			return m, m.leaveLayer(nil)

		case key.Matches(msg, m.keys.NextMarker), key.Matches(msg, m.keys.PrevMarker):
			ev := nav.KeyEvent{
				Key:              nav.KeyTab,
				Shift:            key.Matches(msg, m.keys.PrevMarker),
				ContainerFocused: m.focused == mapFocus,
			}
			if m.ctrl.HandleKey(ev) {
				m.focused = mapFocus
				m.audio.Play(cues.SelectCue())
			} else {
				// Native Tab: the cursor left the marker set, or the
				// press armed re-entry from outside. Keep the state in
				// bounds of the number of available states.
				m.focused = (m.focused + 1) % focused(m.availableFocusStates)
			}

		case key.Matches(msg, m.keys.Activate):
			if m.focused == actionsFocus {
				m.ctrl.Blur()
				return m, m.leaveLayer(nil)
			}
			ev := nav.KeyEvent{Key: nav.KeyEnter, ContainerFocused: m.focused == mapFocus}
			if m.ctrl.HandleKey(ev) {
				m.audio.Play(cues.ActivateCue())
				if mk := m.opened.take(); mk != nil {
					m.lastOpened = mk.Name
				}
			}
		}
		// *** End KeyMsg ***
		return m, tea.Batch(cmds...)

	// Entered the layer
	case ConnectedMsg:
		m.socket = msg.WS
		m.layerID = msg.LayerID
		cmds = append(cmds, m.listenSocket())

	case connectAckMsg:
		m.layerName = msg.layerName
		// Start listening again
		cmds = append(cmds, m.listenSocket())

	case MarkersMsg:
		m = m.withMarkers(msg.Markers)
		if m.socket != nil {
			// Start listening again
			cmds = append(cmds, m.listenSocket())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	doc.WriteString(styles.BaseStyle.Render(m.viewportView(styles.Width, styles.MapHeight)))
	doc.WriteString("\n" + m.statusBarView())
	doc.WriteString("\n" + m.actionsView())
	doc.WriteString("\n" + styles.HelpMenu.Render(m.help.View(m.keys)))

	docStyle := styles.DocStyle
	if physicalWidth > 0 {
		docStyle = docStyle.MaxWidth(physicalWidth)
	}
	return docStyle.Render(doc.String())
}

// viewportView plots the markers of the layer on a width×height grid around
// the camera center.
func (m Model) viewportView(width, height int) string {
	rows := make([][]string, height)
	for r := range rows {
		rows[r] = make([]string, width)
		for c := range rows[r] {
			rows[r][c] = " "
		}
	}

	_, selIdx, haveSel := m.ctrl.Selected()
	for i, mk := range m.markers {
		col, row, ok := m.cam.Project(mk.Position(), width, height)
		if !ok {
			continue
		}
		glyph := mk.Icon()
		if glyph == "" {
			glyph = "•"
		}
		style := styles.MarkerStyle
		if haveSel && i == selIdx {
			style = styles.SelectedMarkerStyle
		}
		rows[row][col] = style.Render(glyph)
	}

	lines := make([]string, height)
	for r := range rows {
		lines[r] = strings.Join(rows[r], "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusBarView() string {
	status := fmt.Sprintf("%d markers", len(m.markers))
	if _, idx, ok := m.ctrl.Selected(); ok {
		sel := m.markers[idx]
		status = fmt.Sprintf("%s (%s)", sel.Name, sel.Position())
	}

	statusKey := styles.StatusStyle.Render("MAP")
	layer := styles.LayerNugget.Render(m.layerName)
	statusVal := styles.StatusText.Copy().
		Width(styles.Width - lipgloss.Width(statusKey) - lipgloss.Width(layer)).
		Render(" " + status)

	return lipgloss.JoinHorizontal(lipgloss.Top, statusKey, statusVal, layer)
}

func (m Model) actionsView() string {
	style := styles.ActionsBar
	if m.focused == actionsFocus {
		style = styles.ActionsBarFocused
	}
	label := "[ leave layer ]"
	if m.lastOpened != "" {
		label = fmt.Sprintf("[ leave layer ]  opened: %s", m.lastOpened)
	}
	return style.Render(label)
}

// withMarkers re-binds the navigation to a fresh marker set and recenters
// the camera on its first marker.
func (m Model) withMarkers(infos []feedmsg.MarkerInfo) Model {
	markers := make([]*marker.Marker, 0, len(infos))
	bound := make([]nav.Marker, 0, len(infos))
	for _, info := range infos {
		mk := marker.New(info.Name, geo.Point{Lat: info.Lat, Lon: info.Lon}, info.Icon)
		mk.ID = info.ID
		mk.OnActivate = m.opened.record
		markers = append(markers, mk)
		bound = append(bound, mk)
	}

	m.markers = markers
	m.ctrl.Rebind(bound)
	m.lastOpened = ""
	if len(markers) > 0 {
		m.cam.SetCenter(markers[0].Position())
	}
	return m
}

// leaveLayer disconnects from the feed and reports the layer as left.
func (m Model) leaveLayer(err error) tea.Cmd {
	return func() tea.Msg {
		if m.socket == nil {
			return LeaveLayerMsg{Err: err}
		}
		// Send websocket close message
		werr := m.socket.WriteControl(
			websocket.CloseMessage,
			nil,
			time.Now().Add(time.Second*10),
		)
		if werr != nil {
			return LeaveLayerMsg{Err: werr}
		}
		return LeaveLayerMsg{Err: err}
	}
}

// listenSocket reads feed messages from the websocket connection.
func (m Model) listenSocket() tea.Cmd {
	// https://github.com/charmbracelet/bubbletea/issues/25#issuecomment-732339162
	return func() tea.Msg {
		var envelope feedmsg.Envelope
		err := m.socket.ReadJSON(&envelope)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				return mnerr.ErrMsg{Err: fmt.Errorf("readJSON: unexpected close: %w", err)}
			}
			return mnerr.ErrMsg{Err: fmt.Errorf("readJSON: %w", err)}
		}

		switch envelope.Typ {
		case feedmsg.CONNECT:
			var msg feedmsg.ConnectMsg
			if err := envelope.Unwrap(&msg); err != nil {
				return mnerr.ErrMsg{Err: fmt.Errorf("unmarshal ConnectMsg: %+v\n%w", envelope, err)}
			}
			m.log.Printf("feed connected: client %v", msg.ClientID)
			return connectAckMsg{layerName: msg.LayerName}

		case feedmsg.SNAPSHOT:
			var msg feedmsg.SnapshotMsg
			if err := envelope.Unwrap(&msg); err != nil {
				return mnerr.ErrMsg{Err: fmt.Errorf("unmarshal SnapshotMsg: %+v\n%w", envelope, err)}
			}
			return MarkersMsg{Markers: msg.Markers}

		default:
			return mnerr.ErrMsg{Err: fmt.Errorf("unknown message type: %+v", envelope)}
		}
	}
}

func (in *inbox) record(mk *marker.Marker) {
	in.opened = mk
}

func (in *inbox) take() *marker.Marker {
	mk := in.opened
	in.opened = nil
	return mk
}
