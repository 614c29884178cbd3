// Package layersui lists the marker layers published by the server.
package layersui

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/NYUeServ/marker-navigation/keymap"
	"github.com/NYUeServ/marker-navigation/mnerr"
	"github.com/NYUeServ/marker-navigation/styles"
)

var docStyle = styles.DocStyle

type Layer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MarkerCount int    `json:"markerCount"`
}

type layersResp struct {
	Layers []Layer `json:"layers"`
}

// LayerSelected asks the host to open the layer's map view.
type LayerSelected struct {
	ID   string
	Name string
}

// Commands
func (m Model) listLayers() tea.Cmd {
	return func() tea.Msg {
		c := &http.Client{Timeout: 10 * time.Second}
		res, err := c.Get(m.apiURL + "/layers")
		if err != nil {
			return mnerr.ErrMsg{Err: fmt.Errorf("listLayers: %w", err)}
		}
		defer res.Body.Close()
		if res.StatusCode >= 400 {
			return mnerr.ErrMsg{Err: fmt.Errorf("could not get layers: %d", res.StatusCode)}
		}
		var resp layersResp
		if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
			return mnerr.ErrMsg{Err: fmt.Errorf("decode: %w", err)}
		}
		return resp
	}
}

func layerSelect(id, name string) tea.Cmd {
	return func() tea.Msg {
		return LayerSelected{ID: id, Name: name}
	}
}

type Model struct {
	apiURL     string // REST API base endpoint
	layers     []Layer
	layerTable table.Model
	keys       keymap.Mapping
	help       help.Model
	loading    bool
	err        error
	log        *log.Logger
}

func New(apiURL string) tea.Model {
	return Model{
		apiURL:  apiURL,
		keys:    keymap.DefaultMapping,
		help:    help.New(),
		loading: true,
		log:     log.Default(),
	}
}

// Init is used to handle any initial I/O
func (m Model) Init() tea.Cmd {
	return m.listLayers()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layerTable.SetWidth(msg.Width - 10)
	case mnerr.ErrMsg:
		m.err = msg
		m.loading = false
	case layersResp:
		m.layers = msg.Layers
		m.layerTable = makeLayersTable(m)
		m.layerTable.Focus()
		m.loading = false
		m.err = nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Activate):
			if len(m.layers) > 0 {
				row := m.layerTable.SelectedRow()
				cmds = append(cmds, layerSelect(row[1], row[0]))
			}
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			cmds = append(cmds, m.listLayers())
		}
	}
	newLayerTable, ltCmd := m.layerTable.Update(msg)
	m.layerTable = newLayerTable

	cmds = append(cmds, ltCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	// Layer table
	{
		if len(m.layers) > 0 {
			layerTable := styles.BaseStyle.Width(styles.Width).Render(m.layerTable.View())
			doc.WriteString(layerTable)
		} else if m.loading {
			doc.WriteString(styles.MessageText.Render("Loading layers..."))
		} else {
			doc.WriteString(styles.MessageText.Render("No layers published.\n\n"))
		}
	}

	if m.err != nil {
		doc.WriteString("\n" + styles.RenderError(m.err.Error()))
	}

	// Help menu
	{
		doc.WriteString("\n" + styles.HelpMenu.Render(m.help.View(m.keys)))
	}

	if physicalWidth > 0 {
		docStyle = styles.DocStyle.MaxWidth(physicalWidth)
	}

	return docStyle.Render(doc.String())
}

func makeLayersTable(m Model) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "ID", Width: 15},
		{Title: "Markers", Width: 10},
	}

	rows := make([]table.Row, 0)

	for _, l := range m.layers {
		row := table.Row{l.Name, l.ID, fmt.Sprintf("%d", l.MarkerCount)}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
