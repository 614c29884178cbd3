// Package marknav wires the layer list and the map view into one program.
package marknav

import (
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/hyphengolang/prelude/types/suid"

	"github.com/NYUeServ/marker-navigation/cues"
	"github.com/NYUeServ/marker-navigation/keymap"
	"github.com/NYUeServ/marker-navigation/layersui"
	"github.com/NYUeServ/marker-navigation/mapui"
	"github.com/NYUeServ/marker-navigation/mnerr"
	"github.com/NYUeServ/marker-navigation/styles"
)

type (
	// Session identifies one client session against the layer server.
	Session struct {
		ID suid.UUID `json:"id"`
	}

	appView int

	Options struct {
		// DistinctIcons restores each marker's own icon on deselect.
		DistinctIcons bool
		// Mute disables the audio cues.
		Mute bool
	}

	mainModel struct {
		curView      appView
		layers       tea.Model
		mapView      tea.Model
		RESTendpoint string
		WSendpoint   string
		curError     string
	}
)

const (
	mapView appView = iota
	layersView
)

func NewModel(serverHostURL string, opts Options) (mainModel, error) {
	wsHostURL, err := url.Parse(serverHostURL)
	if err != nil {
		return mainModel{}, err
	}
	wsHostURL.Scheme = "ws"

	return mainModel{
		curView: layersView,
		layers:  layersui.New(serverHostURL + "/api/v1"),
		mapView: mapui.New(mapui.Options{
			DistinctIcons: opts.DistinctIcons,
			Audio:         cues.NewPlayer(opts.Mute),
		}),
		RESTendpoint: serverHostURL + "/api/v1",
		WSendpoint:   wsHostURL.String() + "/api/v1",
	}, nil
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(
		m.layers.Init(),
		m.mapView.Init(),
	)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case mnerr.ErrMsg:
		m.curError = msg.Error()

		// Was a key press
	case tea.KeyMsg:
		switch {
		// Ctrl+c exits. Even with short running programs it's good to have
		// a quit key, just incase your logic is off. Users will be very
		// annoyed if they can't exit.
		case key.Matches(msg, keymap.DefaultMapping.Quit):
			return m, tea.Quit
		}

	case layersui.LayerSelected:
		cmd = m.layerConnect(msg.ID)
		m.curView = mapView
		cmds = append(cmds, cmd)

	case mapui.LeaveLayerMsg:
		if msg.Err != nil {
			cmd = m.handleError(fmt.Errorf("leaveLayer: %w", msg.Err))
			cmds = append(cmds, cmd)
		}
		m.curView = layersView
	}

	// Call sub-model Updates
	switch m.curView {
	case layersView:
		m.layers, cmd = m.layers.Update(msg)
	case mapView:
		m.mapView, cmd = m.mapView.Update(msg)
	}

	// Run all commands from sub-model Updates
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m mainModel) View() string {
	serverLine := fmt.Sprintf("\nServer: %s\n", m.RESTendpoint)
	if m.curError != "" {
		serverLine += styles.RenderError(m.curError) + "\n"
	}

	switch m.curView {
	case mapView:
		return serverLine + m.mapView.View()
	default:
		return serverLine + m.layers.View()
	}
}

func Run(serverHostURL string, opts Options) {
	m, err := NewModel(serverHostURL, opts)
	if err != nil {
		bail(err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		bail(err)
	}
}

func bail(err error) {
	if err != nil {
		fmt.Printf("Uh oh, there was an error: %v\n", err)
		os.Exit(1)
	}
}

func (m mainModel) layerConnect(layerID string) tea.Cmd {
	return func() tea.Msg {
		fURL := m.WSendpoint + "/layers/" + layerID + "/feed"
		ws, _, err := websocket.DefaultDialer.Dial(fURL, nil)
		if err != nil {
			return mnerr.ErrMsg{Err: fmt.Errorf("layerConnect: %v\n%v", fURL, err)}
		}
		return mapui.ConnectedMsg{
			WS:      ws,
			LayerID: layerID,
		}
	}
}

func (m mainModel) handleError(err error) tea.Cmd {
	return func() tea.Msg {
		return mnerr.ErrMsg{Err: err}
	}
}
