package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/metrics"
	"github.com/cloudlens/tagscope/internal/remediate"
)

// editorState drives the remediation editor: pick an untagged resource,
// fill in its tag fields, then apply to re-derive flags and merge.
type editorState struct {
	rows   *dataset.Table // untagged subset of the working table
	cursor int

	editing  bool
	focusIdx int
	inputs   [4]textinput.Model

	edits remediate.Edits
}

func newEditorState(t *dataset.Table) editorState {
	es := editorState{edits: remediate.Edits{}}
	for i, f := range dataset.TagFields {
		in := textinput.New()
		in.Placeholder = f
		in.CharLimit = 64
		in.Width = 24
		es.inputs[i] = in
	}
	es.reload(t)
	return es
}

// reload re-derives the untagged subset from the working table.
func (es *editorState) reload(t *dataset.Table) {
	es.rows = t.Filter(func(r dataset.Record) bool { return t.Flag(r) == dataset.FlagNo })
	if es.cursor >= es.rows.Len() {
		es.cursor = es.rows.Len() - 1
	}
	if es.cursor < 0 {
		es.cursor = 0
	}
}

func (es *editorState) currentID() string {
	if es.cursor >= es.rows.Len() {
		return ""
	}
	return es.rows.Field(es.rows.Rows[es.cursor], dataset.ColResourceID)
}

// beginEdit focuses the inputs, prefilled from the record and any pending edit.
func (es *editorState) beginEdit() {
	if es.rows.Len() == 0 {
		return
	}
	r := es.rows.Rows[es.cursor]
	pending := es.edits[es.currentID()]
	prefill := []string{
		firstNonEmpty(pending.Department, es.rows.Field(r, dataset.ColDepartment)),
		firstNonEmpty(pending.Project, es.rows.Field(r, dataset.ColProject)),
		firstNonEmpty(pending.Owner, es.rows.Field(r, dataset.ColOwner)),
		firstNonEmpty(pending.CostCenter, es.rows.Field(r, dataset.ColCostCenter)),
	}
	for i := range es.inputs {
		es.inputs[i].SetValue(prefill[i])
		es.inputs[i].Blur()
	}
	es.focusIdx = 0
	es.inputs[0].Focus()
	es.editing = true
}

// saveEdit records the input values as a pending edit for the current record.
func (es *editorState) saveEdit() {
	es.edits[es.currentID()] = remediate.Edit{
		Department: strings.TrimSpace(es.inputs[0].Value()),
		Project:    strings.TrimSpace(es.inputs[1].Value()),
		Owner:      strings.TrimSpace(es.inputs[2].Value()),
		CostCenter: strings.TrimSpace(es.inputs[3].Value()),
	}
	es.editing = false
}

// updateEditor handles key input on the remediation page.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	es := &m.editor

	if es.editing {
		switch msg.String() {
		case "esc":
			es.editing = false
			return m, nil
		case "enter":
			es.saveEdit()
			m.status = fmt.Sprintf("edit staged for %s (%d pending)", es.currentID(), len(es.edits))
			return m, nil
		case "tab", "down":
			es.inputs[es.focusIdx].Blur()
			es.focusIdx = (es.focusIdx + 1) % len(es.inputs)
			es.inputs[es.focusIdx].Focus()
			return m, nil
		case "shift+tab", "up":
			es.inputs[es.focusIdx].Blur()
			es.focusIdx = (es.focusIdx + len(es.inputs) - 1) % len(es.inputs)
			es.inputs[es.focusIdx].Focus()
			return m, nil
		}
		var cmd tea.Cmd
		es.inputs[es.focusIdx], cmd = es.inputs[es.focusIdx].Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if es.cursor > 0 {
			es.cursor--
		}
	case "down", "j":
		if es.cursor < es.rows.Len()-1 {
			es.cursor++
		}
	case "enter", "e":
		es.beginEdit()
	case "a":
		if len(es.edits) == 0 {
			m.status = "no staged edits to apply"
			return m, nil
		}
		merged, warnings := remediate.Apply(m.data, es.edits)
		m.data = merged
		es.edits = remediate.Edits{}
		m.refresh()
		m.status = fmt.Sprintf("remediation applied; untagged cost now %.2f%%",
			metrics.PercentUntaggedCost(m.data))
		if len(warnings) > 0 {
			m.status += fmt.Sprintf(" (%d edits unmatched)", len(warnings))
		}
	case "x":
		m.exportRemediated()
	}
	return m, nil
}

// view renders the remediation page.
func (es *editorState) view(styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Header.Render("Tag Remediation Editor"))
	sb.WriteString("\n\n")

	if es.rows.Len() == 0 {
		sb.WriteString(styles.StatusOK.Render("No untagged resources found."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, r := range es.rows.Rows {
		marker := "  "
		style := styles.Body
		if i == es.cursor {
			marker = "> "
			style = styles.Bold
		}
		id := es.rows.Field(r, dataset.ColResourceID)
		line := fmt.Sprintf("%s%-16s %8.2f  %d/4", marker, id, es.rows.Cost(r),
			metrics.CompletenessScore(es.rows, r))
		if _, staged := es.edits[id]; staged {
			line += "  " + styles.Warning.Render("(edited)")
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	if es.editing {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render(fmt.Sprintf("Editing %s", es.currentID())))
		sb.WriteString("\n")
		for i, f := range dataset.TagFields {
			sb.WriteString(fmt.Sprintf("%-12s %s\n", f+":", es.inputs[i].View()))
		}
		sb.WriteString(styles.Muted.Render("tab: next field • enter: stage • esc: cancel"))
	} else {
		sb.WriteString(styles.Muted.Render("\nj/k: select • e: edit • a: apply edits • x: export CSV"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
