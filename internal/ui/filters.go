package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/metrics"
)

const allValues = "All"

// filterDim is one filterable dimension with its distinct values.
type filterDim struct {
	column   string
	values   []string // first entry is always "All"
	selected int
}

// filterState drives the filter explorer page: pick a value per dimension
// and the whole metrics pipeline re-runs over the filtered table.
type filterState struct {
	dims    []filterDim
	focused int

	filtered *dataset.Table
}

func newFilterState(t *dataset.Table) filterState {
	fs := filterState{
		dims: []filterDim{
			{column: dataset.ColService},
			{column: dataset.ColRegion},
			{column: dataset.ColDepartment},
		},
	}
	for i := range fs.dims {
		fs.dims[i].values = distinctValues(t, fs.dims[i].column)
	}
	fs.recompute(t)
	return fs
}

func distinctValues(t *dataset.Table, column string) []string {
	set := make(map[string]bool)
	for _, r := range t.Rows {
		if v := t.Field(r, column); v != "" {
			set[v] = true
		}
	}
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return append([]string{allValues}, vals...)
}

// recompute applies the current selections to the table.
func (fs *filterState) recompute(t *dataset.Table) {
	fs.filtered = t.Filter(func(r dataset.Record) bool {
		for _, d := range fs.dims {
			if d.selected == 0 {
				continue
			}
			if t.Field(r, d.column) != d.values[d.selected] {
				return false
			}
		}
		return true
	})
}

// updateFilters handles key input on the filter page.
func (m Model) updateFilters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fs := &m.filters
	switch msg.String() {
	case "up", "k":
		if fs.focused > 0 {
			fs.focused--
		}
	case "down", "j":
		if fs.focused < len(fs.dims)-1 {
			fs.focused++
		}
	case "l", "enter", " ":
		d := &fs.dims[fs.focused]
		d.selected = (d.selected + 1) % len(d.values)
		fs.recompute(m.data)
	case "h":
		d := &fs.dims[fs.focused]
		d.selected = (d.selected + len(d.values) - 1) % len(d.values)
		fs.recompute(m.data)
	case "0":
		for i := range fs.dims {
			fs.dims[i].selected = 0
		}
		fs.recompute(m.data)
	}
	return m, nil
}

// view renders the filter page: current selections plus the recomputed
// metrics over the filtered subset.
func (fs *filterState) view(styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Header.Render("Filter Explorer"))
	sb.WriteString("\n\n")

	for i, d := range fs.dims {
		marker := "  "
		style := styles.Body
		if i == fs.focused {
			marker = "> "
			style = styles.Bold
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s%-12s %s", marker, d.column+":", d.values[d.selected])))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Muted.Render("\nj/k: dimension • h/l: value • 0: reset\n\n"))

	t := fs.filtered
	sb.WriteString(fmt.Sprintf("Matching resources: %d\n", t.Len()))
	sb.WriteString(fmt.Sprintf("Total monthly cost: %.2f\n", metrics.TotalCost(t)))
	sb.WriteString(fmt.Sprintf("Untagged share of cost: %.2f%%\n\n", metrics.PercentUntaggedCost(t)))

	counts := metrics.CountByTagStatus(t)
	costs := metrics.CostByTagStatus(t)
	g := NewGrid("Tagging Status (filtered)", "Flag", "Resources", "Monthly Cost")
	for _, k := range sortedFlagKeys(counts) {
		g.AddRow(k, fmt.Sprintf("%d", counts[k]), fmt.Sprintf("%.2f", costs[k]))
	}
	sb.WriteString(g.View(styles))

	return sb.String()
}
