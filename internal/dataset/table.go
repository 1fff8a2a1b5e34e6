package dataset

import (
	"strconv"
	"strings"
)

// Canonical column names for the cloud cost export schema. Lookups are
// case-insensitive, so files with e.g. "resourceid" headers still resolve.
const (
	ColResourceID  = "ResourceID"
	ColDepartment  = "Department"
	ColProject     = "Project"
	ColOwner       = "Owner"
	ColCostCenter  = "CostCenter"
	ColService     = "Service"
	ColRegion      = "Region"
	ColEnvironment = "Environment"
	ColTagged      = "Tagged"
	ColMonthlyCost = "MonthlyCostUSD"
)

// Tagged flag values as they appear in the source data.
const (
	FlagYes = "Yes"
	FlagNo  = "No"
)

// TagFields are the attributes that determine tagging completeness and,
// during remediation, the Tagged flag itself.
var TagFields = []string{ColDepartment, ColProject, ColOwner, ColCostCenter}

// Record is one row, positional and parallel to the owning Table's headers.
type Record []string

// Table is an ordered set of records sharing one normalized column schema.
type Table struct {
	Headers []string
	Rows    []Record

	index map[string]int // lower(header) -> column position
}

// New builds an empty table from raw header names. Headers are normalized:
// surrounding whitespace trimmed and stray double-quote characters removed.
func New(headers []string) *Table {
	t := &Table{Headers: make([]string, len(headers))}
	for i, h := range headers {
		t.Headers[i] = NormalizeHeader(h)
	}
	t.reindex()
	return t
}

// NormalizeHeader trims whitespace and strips double quotes from a column name.
func NormalizeHeader(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), `"`, "")
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		t.index[strings.ToLower(h)] = i
	}
}

// Append adds a row, padding or truncating to the header width so the
// identical-column-set invariant holds for every record.
func (t *Table) Append(row []string) {
	rec := make(Record, len(t.Headers))
	copy(rec, row)
	t.Rows = append(t.Rows, rec)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Col resolves a column name to its position, case-insensitively.
// The second result is false when the column does not exist.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return i, ok
}

// Field returns the trimmed value of the named column on a record, or ""
// when the column is absent.
func (t *Table) Field(r Record, name string) string {
	i, ok := t.Col(name)
	if !ok || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// SetField writes a value on a record in place. Unknown columns are ignored.
func (t *Table) SetField(r Record, name, value string) {
	if i, ok := t.Col(name); ok && i < len(r) {
		r[i] = value
	}
}

// Cost parses the monthly cost of a record. Unparsable or missing values
// count as zero; the schema is not enforced beyond header normalization.
func (t *Table) Cost(r Record) float64 {
	v := t.Field(r, ColMonthlyCost)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// Flag returns the record's Tagged value.
func (t *Table) Flag(r Record) string { return t.Field(r, ColTagged) }

// Clone returns a deep copy sharing nothing with the receiver.
func (t *Table) Clone() *Table {
	out := New(t.Headers)
	out.Rows = make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		rec := make(Record, len(r))
		copy(rec, r)
		out.Rows[i] = rec
	}
	return out
}

// Filter returns a new table holding the records for which keep returns true.
// Records are copied, so edits to the result never touch the receiver.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := New(t.Headers)
	for _, r := range t.Rows {
		if keep(r) {
			rec := make(Record, len(r))
			copy(rec, r)
			out.Rows = append(out.Rows, rec)
		}
	}
	return out
}

// WithColumn returns a copy of the table extended by one column whose value
// per row is produced by fn. An existing column of the same name is reused
// rather than duplicated.
func (t *Table) WithColumn(name string, fn func(Record) string) *Table {
	if i, ok := t.Col(name); ok {
		out := t.Clone()
		for _, r := range out.Rows {
			r[i] = fn(r)
		}
		return out
	}
	out := New(append(append([]string{}, t.Headers...), name))
	for _, r := range t.Rows {
		rec := make(Record, len(out.Headers))
		copy(rec, r)
		rec[len(rec)-1] = fn(r)
		out.Rows = append(out.Rows, rec)
	}
	return out
}
