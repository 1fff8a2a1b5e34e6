// Package remediate applies manual tag corrections to untagged records,
// re-derives the Tagged flag from field completeness, and merges the result
// back into the full dataset.
package remediate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cloudlens/tagscope/internal/dataset"
)

// Edit holds the correctable tag fields for one resource. Empty values
// leave the existing field untouched.
type Edit struct {
	Department string `yaml:"department"`
	Project    string `yaml:"project"`
	Owner      string `yaml:"owner"`
	CostCenter string `yaml:"cost_center"`
}

// Edits maps ResourceID to its correction.
type Edits map[string]Edit

// LoadEdits reads an edits file.
func LoadEdits(path string) (Edits, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read edits: %w", err)
	}
	var e Edits
	if err := yaml.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("parse edits: %w", err)
	}
	return e, nil
}

// Apply splits the table by Tagged flag, applies edits to the untagged
// subset, re-derives each edited record's flag from tag-field completeness,
// and merges: tagged records first (unchanged), then the edited records in
// their original order. The input table is not modified.
//
// Edits naming a ResourceID that is not untagged are returned as warnings.
func Apply(t *dataset.Table, edits Edits) (*dataset.Table, []string) {
	tagged := t.Filter(func(r dataset.Record) bool { return t.Flag(r) == dataset.FlagYes })
	untagged := t.Filter(func(r dataset.Record) bool { return t.Flag(r) != dataset.FlagYes })

	seen := make(map[string]bool, len(untagged.Rows))
	for _, r := range untagged.Rows {
		id := untagged.Field(r, dataset.ColResourceID)
		seen[id] = true
		if e, ok := edits[id]; ok {
			applyEdit(untagged, r, e)
		}
		untagged.SetField(r, dataset.ColTagged, deriveFlag(untagged, r))
	}

	var warnings []string
	for id := range edits {
		if !seen[id] {
			warnings = append(warnings, fmt.Sprintf("edit for %q does not match an untagged resource", id))
		}
	}

	merged := tagged
	merged.Rows = append(merged.Rows, untagged.Rows...)
	return merged, warnings
}

// Recompute re-derives every record's flag with no edits applied. Applying
// it to an already-merged table with unchanged field values yields the same
// flags and aggregates.
func Recompute(t *dataset.Table) *dataset.Table {
	merged, _ := Apply(t, nil)
	return merged
}

func applyEdit(t *dataset.Table, r dataset.Record, e Edit) {
	set := func(col, v string) {
		if v != "" {
			t.SetField(r, col, v)
		}
	}
	set(dataset.ColDepartment, e.Department)
	set(dataset.ColProject, e.Project)
	set(dataset.ColOwner, e.Owner)
	set(dataset.ColCostCenter, e.CostCenter)
}

// deriveFlag is "Yes" iff all four tag fields are present.
func deriveFlag(t *dataset.Table, r dataset.Record) string {
	for _, f := range dataset.TagFields {
		if t.Field(r, f) == "" {
			return dataset.FlagNo
		}
	}
	return dataset.FlagYes
}
