// Package metrics computes tagging-quality and cost aggregates over a
// normalized dataset table. All functions are pure: inputs are never
// mutated, and enrichment returns a new table.
package metrics

import (
	"sort"
	"strconv"

	"github.com/cloudlens/tagscope/internal/dataset"
)

// NotAvailable is the arg-max sentinel for empty group-by results.
const NotAvailable = "N/A"

// CompletenessColumn is the derived per-record column added by WithCompleteness.
const CompletenessColumn = "TagCompletenessScore"

// CountByTagStatus counts records per Tagged flag value. Flag values other
// than Yes/No are counted under their own key; no validation is applied.
func CountByTagStatus(t *dataset.Table) map[string]int {
	out := make(map[string]int)
	for _, r := range t.Rows {
		out[t.Flag(r)]++
	}
	return out
}

// PercentUntagged returns the share of records flagged "No", in percent.
// An empty table yields 0.
func PercentUntagged(t *dataset.Table) float64 {
	if t.Len() == 0 {
		return 0
	}
	counts := CountByTagStatus(t)
	return float64(counts[dataset.FlagNo]) / float64(t.Len()) * 100
}

// TotalCost sums the monthly cost over all records.
func TotalCost(t *dataset.Table) float64 {
	var total float64
	for _, r := range t.Rows {
		total += t.Cost(r)
	}
	return total
}

// CostByTagStatus sums monthly cost per Tagged flag value.
func CostByTagStatus(t *dataset.Table) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range t.Rows {
		out[t.Flag(r)] += t.Cost(r)
	}
	return out
}

// PercentUntaggedCost returns the share of total cost carried by untagged
// records, in percent. A zero total cost yields 0.
func PercentUntaggedCost(t *dataset.Table) float64 {
	total := TotalCost(t)
	if total == 0 {
		return 0
	}
	return CostByTagStatus(t)[dataset.FlagNo] / total * 100
}

// CostByGroup sums monthly cost per distinct value of the key column.
// Records with an empty key value are skipped.
func CostByGroup(t *dataset.Table, key string) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range t.Rows {
		k := t.Field(r, key)
		if k == "" {
			continue
		}
		out[k] += t.Cost(r)
	}
	return out
}

// TopGroup returns the key with the highest summed cost, or "N/A" for an
// empty mapping. Ties break toward the lexically smaller key so the result
// is deterministic.
func TopGroup(m map[string]float64) string {
	top := NotAvailable
	var best float64
	for k, v := range m {
		if top == NotAvailable || v > best || (v == best && k < top) {
			top = k
			best = v
		}
	}
	return top
}

// CostByUntaggedDepartment sums cost of untagged records per department.
func CostByUntaggedDepartment(t *dataset.Table) map[string]float64 {
	untagged := t.Filter(func(r dataset.Record) bool { return t.Flag(r) == dataset.FlagNo })
	return CostByGroup(untagged, dataset.ColDepartment)
}

// EnvTag keys the environment/flag cost breakdown.
type EnvTag struct {
	Environment string
	Flag        string
}

// CostByEnvironmentAndTag sums monthly cost per (environment, flag) pair.
func CostByEnvironmentAndTag(t *dataset.Table) map[EnvTag]float64 {
	out := make(map[EnvTag]float64)
	for _, r := range t.Rows {
		k := EnvTag{Environment: t.Field(r, dataset.ColEnvironment), Flag: t.Flag(r)}
		out[k] += t.Cost(r)
	}
	return out
}

// CompletenessScore counts the non-empty tag fields on a record, 0 to 4.
func CompletenessScore(t *dataset.Table, r dataset.Record) int {
	var n int
	for _, f := range dataset.TagFields {
		if t.Field(r, f) != "" {
			n++
		}
	}
	return n
}

// WithCompleteness returns a copy of the table enriched with the
// TagCompletenessScore column.
func WithCompleteness(t *dataset.Table) *dataset.Table {
	return t.WithColumn(CompletenessColumn, func(r dataset.Record) string {
		return strconv.Itoa(CompletenessScore(t, r))
	})
}

// MissingFieldFrequency counts empty values per tag field.
func MissingFieldFrequency(t *dataset.Table) map[string]int {
	out := make(map[string]int, len(dataset.TagFields))
	for _, f := range dataset.TagFields {
		out[f] = 0
	}
	for _, r := range t.Rows {
		for _, f := range dataset.TagFields {
			if t.Field(r, f) == "" {
				out[f]++
			}
		}
	}
	return out
}

// MissingByColumn counts empty values for every column in the schema.
func MissingByColumn(t *dataset.Table) map[string]int {
	out := make(map[string]int, len(t.Headers))
	for _, h := range t.Headers {
		out[h] = 0
	}
	for _, r := range t.Rows {
		for _, h := range t.Headers {
			if t.Field(r, h) == "" {
				out[h]++
			}
		}
	}
	return out
}

// ResourceCost pairs a resource with its monthly cost.
type ResourceCost struct {
	ResourceID  string
	MonthlyCost float64
}

// UntaggedResources lists (identifier, cost) for records flagged "No",
// in table order.
func UntaggedResources(t *dataset.Table) []ResourceCost {
	var out []ResourceCost
	for _, r := range t.Rows {
		if t.Flag(r) == dataset.FlagNo {
			out = append(out, ResourceCost{
				ResourceID:  t.Field(r, dataset.ColResourceID),
				MonthlyCost: t.Cost(r),
			})
		}
	}
	return out
}

// LowestCompletenessTopN returns the n records with the lowest completeness
// score, ascending. The sort is stable, so ties keep table order.
func LowestCompletenessTopN(t *dataset.Table, n int) *dataset.Table {
	enriched := WithCompleteness(t)
	sort.SliceStable(enriched.Rows, func(i, j int) bool {
		si, _ := strconv.Atoi(enriched.Field(enriched.Rows[i], CompletenessColumn))
		sj, _ := strconv.Atoi(enriched.Field(enriched.Rows[j], CompletenessColumn))
		return si < sj
	})
	if n < 0 {
		n = 0
	}
	if n > enriched.Len() {
		n = enriched.Len()
	}
	enriched.Rows = enriched.Rows[:n]
	return enriched
}
