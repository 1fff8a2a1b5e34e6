package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloudlens/tagscope/internal/dataset"
)

// Summary is the full tagging-quality report over one dataset, ready to render.
type Summary struct {
	ID          string
	GeneratedAt time.Time
	Source      string

	Rows    int
	Columns []string

	CountsByTag     map[string]int
	PercentUntagged float64

	TotalCost           float64
	CostByTag           map[string]float64
	PercentUntaggedCost float64

	TopUntaggedDepartment string
	TopProject            string

	CostByService     map[string]float64
	CostByEnvironment map[string]float64
	CostByEnvAndTag   map[EnvTag]float64

	MissingTagFields map[string]int
	MissingByColumn  map[string]int

	Untagged           []ResourceCost
	LowestCompleteness *dataset.Table
}

// Build assembles the summary for a table. topN bounds the lowest-completeness
// section; source is a display name for the input file.
func Build(t *dataset.Table, source string, topN int) *Summary {
	return &Summary{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      source,

		Rows:    t.Len(),
		Columns: append([]string{}, t.Headers...),

		CountsByTag:     CountByTagStatus(t),
		PercentUntagged: PercentUntagged(t),

		TotalCost:           TotalCost(t),
		CostByTag:           CostByTagStatus(t),
		PercentUntaggedCost: PercentUntaggedCost(t),

		TopUntaggedDepartment: TopGroup(CostByUntaggedDepartment(t)),
		TopProject:            TopGroup(CostByGroup(t, dataset.ColProject)),

		CostByService:     CostByGroup(t, dataset.ColService),
		CostByEnvironment: CostByGroup(t, dataset.ColEnvironment),
		CostByEnvAndTag:   CostByEnvironmentAndTag(t),

		MissingTagFields: MissingFieldFrequency(t),
		MissingByColumn:  MissingByColumn(t),

		Untagged:           UntaggedResources(t),
		LowestCompleteness: LowestCompletenessTopN(t, topN),
	}
}

// Markdown renders a compact report suitable for stdout or standalone docs.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[TAGGING AUDIT]\n")
	if s.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Source))
	}
	b.WriteString(fmt.Sprintf("Report: %s (%s)\n", s.ID, s.GeneratedAt.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d (%s)\n\n", len(s.Columns), strings.Join(s.Columns, ", ")))

	b.WriteString("[TAGGING STATUS]\n")
	for _, k := range sortedKeys(s.CountsByTag) {
		b.WriteString(fmt.Sprintf("- %s: %d\n", k, s.CountsByTag[k]))
	}
	b.WriteString(fmt.Sprintf("Untagged resources: %.2f%%\n\n", s.PercentUntagged))

	b.WriteString("[COST VISIBILITY]\n")
	b.WriteString(fmt.Sprintf("Total monthly cost: %.2f USD\n", s.TotalCost))
	for _, k := range sortedCostKeys(s.CostByTag) {
		b.WriteString(fmt.Sprintf("- %s: %.2f\n", k, s.CostByTag[k]))
	}
	b.WriteString(fmt.Sprintf("Untagged share of cost: %.2f%%\n", s.PercentUntaggedCost))
	b.WriteString(fmt.Sprintf("Department with most untagged cost: %s\n", s.TopUntaggedDepartment))
	b.WriteString(fmt.Sprintf("Project with highest total cost: %s\n\n", s.TopProject))

	writeCostSection(&b, "[COST BY SERVICE]", s.CostByService)
	writeCostSection(&b, "[COST BY ENVIRONMENT]", s.CostByEnvironment)

	if len(s.CostByEnvAndTag) > 0 {
		b.WriteString("[COST BY ENVIRONMENT AND TAG]\n")
		keys := make([]EnvTag, 0, len(s.CostByEnvAndTag))
		for k := range s.CostByEnvAndTag {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Environment == keys[j].Environment {
				return keys[i].Flag < keys[j].Flag
			}
			return keys[i].Environment < keys[j].Environment
		})
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("- %s / %s: %.2f\n", k.Environment, k.Flag, s.CostByEnvAndTag[k]))
		}
		b.WriteString("\n")
	}

	b.WriteString("[TAG COMPLETENESS]\n")
	if s.LowestCompleteness != nil && s.LowestCompleteness.Len() > 0 {
		b.WriteString(fmt.Sprintf("Lowest-scoring resources (top %d):\n", s.LowestCompleteness.Len()))
		lc := s.LowestCompleteness
		for _, r := range lc.Rows {
			b.WriteString(fmt.Sprintf("- %s: score %s\n",
				safeVal(lc.Field(r, dataset.ColResourceID)), lc.Field(r, CompletenessColumn)))
		}
	}
	b.WriteString("Missing tag fields:\n")
	for _, f := range dataset.TagFields {
		b.WriteString(fmt.Sprintf("- %s: %d\n", f, s.MissingTagFields[f]))
	}
	b.WriteString("\n")

	if len(s.Untagged) > 0 {
		b.WriteString("[UNTAGGED RESOURCES]\n")
		for _, rc := range s.Untagged {
			b.WriteString(fmt.Sprintf("- %s: %.2f\n", safeVal(rc.ResourceID), rc.MonthlyCost))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeCostSection(b *strings.Builder, title string, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, k := range sortedCostKeys(m) {
		b.WriteString(fmt.Sprintf("- %s: %.2f\n", safeVal(k), m[k]))
	}
	b.WriteString("\n")
}

// sortedCostKeys orders keys by descending cost, ties lexically.
func sortedCostKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] == m[keys[j]] {
			return keys[i] < keys[j]
		}
		return m[keys[i]] > m[keys[j]]
	})
	return keys
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func safeVal(s string) string {
	if s == "" {
		return "(blank)"
	}
	return strings.ReplaceAll(s, "\n", " ")
}
