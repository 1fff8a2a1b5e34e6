package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Grid is a small table component for rendering static rows of metric data.
type Grid struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewGrid creates a Grid with the given title and headers.
func NewGrid(title string, headers ...string) *Grid {
	return &Grid{Title: title, Headers: headers}
}

// AddRow adds a row to the grid.
func (g *Grid) AddRow(cells ...string) {
	g.Rows = append(g.Rows, cells)
}

// View renders the grid using the provided styles.
func (g *Grid) View(styles Styles) string {
	if len(g.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if g.Title != "" {
		sb.WriteString(styles.Title.Render(g.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(g.Headers))
	for i, h := range g.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range g.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)

	for i, h := range g.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)) + "\n")

	for _, row := range g.Rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(rowStyle.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
