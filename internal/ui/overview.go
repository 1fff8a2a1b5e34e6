package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/metrics"
)

// renderOverview builds the audit summary page content.
func renderOverview(t *dataset.Table, source string, styles Styles) string {
	var sb strings.Builder

	sb.WriteString(styles.Header.Render("Cloud Cost and Tagging Audit"))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("%s — %d resources, %d columns", source, t.Len(), len(t.Headers))))
	sb.WriteString("\n\n")

	counts := metrics.CountByTagStatus(t)
	costs := metrics.CostByTagStatus(t)

	status := NewGrid("Tagging Status", "Flag", "Resources", "Monthly Cost")
	for _, k := range sortedFlagKeys(counts) {
		status.AddRow(k, fmt.Sprintf("%d", counts[k]), fmt.Sprintf("%.2f", costs[k]))
	}
	sb.WriteString(status.View(styles))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Untagged resources: %s\n",
		styles.Warning.Render(fmt.Sprintf("%.2f%%", metrics.PercentUntagged(t)))))
	sb.WriteString(fmt.Sprintf("Untagged share of cost: %s\n",
		styles.Warning.Render(fmt.Sprintf("%.2f%%", metrics.PercentUntaggedCost(t)))))
	sb.WriteString(fmt.Sprintf("Department with most untagged cost: %s\n",
		metrics.TopGroup(metrics.CostByUntaggedDepartment(t))))
	sb.WriteString(fmt.Sprintf("Project with highest total cost: %s\n\n",
		metrics.TopGroup(metrics.CostByGroup(t, dataset.ColProject))))

	sb.WriteString(costGrid("Cost by Service", metrics.CostByGroup(t, dataset.ColService)).View(styles))
	sb.WriteString("\n")
	sb.WriteString(costGrid("Cost by Environment", metrics.CostByGroup(t, dataset.ColEnvironment)).View(styles))
	sb.WriteString("\n")

	envTag := metrics.CostByEnvironmentAndTag(t)
	if len(envTag) > 0 {
		g := NewGrid("Cost by Environment and Tag", "Environment", "Flag", "Monthly Cost")
		keys := make([]metrics.EnvTag, 0, len(envTag))
		for k := range envTag {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Environment == keys[j].Environment {
				return keys[i].Flag < keys[j].Flag
			}
			return keys[i].Environment < keys[j].Environment
		})
		for _, k := range keys {
			g.AddRow(k.Environment, k.Flag, fmt.Sprintf("%.2f", envTag[k]))
		}
		sb.WriteString(g.View(styles))
		sb.WriteString("\n")
	}

	missing := metrics.MissingFieldFrequency(t)
	mg := NewGrid("Missing Tag Fields", "Field", "Missing")
	for _, f := range dataset.TagFields {
		mg.AddRow(f, fmt.Sprintf("%d", missing[f]))
	}
	sb.WriteString(mg.View(styles))

	return sb.String()
}

// renderUntagged builds the untagged-resources page content, completeness
// scores included so the worst offenders are visible at a glance.
func renderUntagged(t *dataset.Table, styles Styles) string {
	untagged := metrics.UntaggedResources(t)
	if len(untagged) == 0 {
		return styles.StatusOK.Render("No untagged resources found.")
	}

	sub := t.Filter(func(r dataset.Record) bool { return t.Flag(r) == dataset.FlagNo })
	g := NewGrid(fmt.Sprintf("Untagged Resources (%d)", len(untagged)),
		"ResourceID", "Monthly Cost", "Completeness")
	for _, r := range sub.Rows {
		g.AddRow(
			sub.Field(r, dataset.ColResourceID),
			fmt.Sprintf("%.2f", sub.Cost(r)),
			fmt.Sprintf("%d/4", metrics.CompletenessScore(sub, r)),
		)
	}
	return g.View(styles)
}

func costGrid(title string, m map[string]float64) *Grid {
	g := NewGrid(title, "Key", "Monthly Cost")
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
	for _, k := range keys {
		g.AddRow(k, fmt.Sprintf("%.2f", m[k]))
	}
	return g
}

func sortedFlagKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
