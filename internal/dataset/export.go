package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/cloudlens/tagscope/internal/utils"
)

// MarshalCSV renders the table as CSV, header row included.
func (t *Table) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range t.Rows {
		if err := w.Write(r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportCSV writes the table to path atomically.
func (t *Table) ExportCSV(path string) error {
	data, err := t.MarshalCSV()
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, data)
}

// Untagged returns the two-column (ResourceID, MonthlyCostUSD) view of
// records whose Tagged flag is "No", in table order.
func (t *Table) Untagged() *Table {
	out := New([]string{ColResourceID, ColMonthlyCost})
	for _, r := range t.Rows {
		if t.Flag(r) == FlagNo {
			out.Append([]string{t.Field(r, ColResourceID), t.Field(r, ColMonthlyCost)})
		}
	}
	return out
}
