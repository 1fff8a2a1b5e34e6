package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cloudlens/tagscope/internal/dataset"
)

type page int

const (
	pageOverview page = iota
	pageUntagged
	pageFilters
	pageEditor
)

var pageNames = []string{"Overview", "Untagged", "Filters", "Remediate"}

// Model is the root dashboard model. All data derivation runs top to bottom
// from the in-memory table on every interaction; there is no background work.
type Model struct {
	source    string
	exportDir string
	styles    Styles

	// data is the current working table; remediation replaces it wholesale.
	data *dataset.Table

	active page
	width  int
	height int
	status string

	overview viewport.Model
	untagged viewport.Model
	filters  filterState
	editor   editorState
}

// NewModel builds the dashboard over a loaded table.
func NewModel(t *dataset.Table, source, exportDir string, theme Theme) Model {
	styles := NewStyles(theme)
	m := Model{
		source:    source,
		exportDir: exportDir,
		styles:    styles,
		data:      t,
		overview:  viewport.New(80, 20),
		untagged:  viewport.New(80, 20),
		filters:   newFilterState(t),
		editor:    newEditorState(t),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// refresh recomputes every page's content from the current table.
func (m *Model) refresh() {
	m.overview.SetContent(renderOverview(m.data, m.source, m.styles))
	m.untagged.SetContent(renderUntagged(m.data, m.styles))
	m.filters.recompute(m.data)
	m.editor.reload(m.data)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 4 // header tabs + status line
		if h < 1 {
			h = 1
		}
		m.overview.Width = msg.Width
		m.overview.Height = h
		m.untagged.Width = msg.Width
		m.untagged.Height = h
		return m, nil

	case tea.KeyMsg:
		// The editor consumes most keys while a field is focused.
		if m.active == pageEditor && m.editor.editing {
			return m.updateEditor(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right":
			m.active = (m.active + 1) % page(len(pageNames))
			m.status = ""
			return m, nil
		case "shift+tab", "left":
			m.active = (m.active + page(len(pageNames)) - 1) % page(len(pageNames))
			m.status = ""
			return m, nil
		}
		switch m.active {
		case pageFilters:
			return m.updateFilters(msg)
		case pageEditor:
			return m.updateEditor(msg)
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case pageOverview:
		m.overview, cmd = m.overview.Update(msg)
	case pageUntagged:
		m.untagged, cmd = m.untagged.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var tabs []string
	for i, name := range pageNames {
		if page(i) == m.active {
			tabs = append(tabs, m.styles.TabOn.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabOff.Render(name))
		}
	}
	header := strings.Join(tabs, " ")

	var body string
	switch m.active {
	case pageOverview:
		body = m.overview.View()
	case pageUntagged:
		body = m.untagged.View()
	case pageFilters:
		body = m.filters.view(m.styles)
	case pageEditor:
		body = m.editor.view(m.styles)
	}

	status := m.styles.Muted.Render("tab: switch page • q: quit")
	if m.status != "" {
		status = m.styles.StatusOK.Render(m.status)
	}
	return header + "\n\n" + body + "\n" + status
}

// exportRemediated writes the current table to the export directory.
func (m *Model) exportRemediated() {
	dest := filepath.Join(m.exportDir, "remediated_cloud_costs.csv")
	if err := m.data.ExportCSV(dest); err != nil {
		m.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("exported %d rows to %s", m.data.Len(), dest)
}
