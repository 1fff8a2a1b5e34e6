package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cloudlens/tagscope/internal/dataset"
)

const cleanCSV = "ResourceID,Department,Project,Owner,CostCenter,Service,Region,Environment,Tagged,MonthlyCostUSD\n" +
	"R1,Eng,ProjA,Alice,CC1,EC2,us-east,prod,Yes,120.50\n" +
	"R2,,,,,S3,us-west,dev,No,40.00\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadWellFormed(t *testing.T) {
	p := writeTemp(t, "costs.csv", cleanCSV)
	tab, err := dataset.Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tab.Headers) != 10 {
		t.Fatalf("expected 10 columns, got %d: %v", len(tab.Headers), tab.Headers)
	}
	if tab.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tab.Len())
	}
	if got := tab.Field(tab.Rows[0], dataset.ColOwner); got != "Alice" {
		t.Fatalf("expected owner Alice, got %q", got)
	}
	if got := tab.Cost(tab.Rows[1]); got != 40.00 {
		t.Fatalf("expected cost 40.00, got %v", got)
	}
}

func TestLoadRepairsQuoteWrappedLines(t *testing.T) {
	wrapped := `"ResourceID,Department,Project,Owner,CostCenter,Service,Region,Environment,Tagged,MonthlyCostUSD"` + "\n" +
		`"R1,Eng,ProjA,Alice,CC1,EC2,us-east,prod,Yes,120.50"` + "\n" +
		`"R2,,,,,S3,us-west,dev,No,40.00"` + "\n"

	clean, err := dataset.Load(writeTemp(t, "clean.csv", cleanCSV))
	if err != nil {
		t.Fatalf("load clean: %v", err)
	}
	repaired, err := dataset.Load(writeTemp(t, "wrapped.csv", wrapped))
	if err != nil {
		t.Fatalf("load wrapped: %v", err)
	}
	if !reflect.DeepEqual(clean.Headers, repaired.Headers) {
		t.Fatalf("headers differ: %v vs %v", clean.Headers, repaired.Headers)
	}
	if !reflect.DeepEqual(clean.Rows, repaired.Rows) {
		t.Fatalf("rows differ: %v vs %v", clean.Rows, repaired.Rows)
	}
}

func TestRepairKeepsInnerQuotesLiteral(t *testing.T) {
	wrapped := `"ResourceID,Department,Tagged,MonthlyCostUSD"` + "\n" +
		`"R1,""alpha"" team,Yes,10.00"` + "\n"
	tab, err := dataset.Load(writeTemp(t, "inner.csv", wrapped))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The repaired re-parse splits on commas only: quote characters left in
	// a field after the wrapping strip are kept as-is, not re-interpreted.
	if got := tab.Field(tab.Rows[0], dataset.ColDepartment); got != `""alpha"" team` {
		t.Fatalf("expected literal quotes preserved, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadSingleColumnIsUnrepairable(t *testing.T) {
	p := writeTemp(t, "one.csv", "name\nalpha\nbeta\n")
	_, err := dataset.Load(p)
	if !errors.Is(err, dataset.ErrUnrepairable) {
		t.Fatalf("expected ErrUnrepairable, got %v", err)
	}
}

func TestHeaderNormalization(t *testing.T) {
	p := writeTemp(t, "messy.csv", `"""ResourceID""", Department ,Tagged ,MonthlyCostUSD`+"\n"+`R1,Eng,Yes,10`+"\n")
	tab, err := dataset.Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"ResourceID", "Department", "Tagged", "MonthlyCostUSD"}
	if !reflect.DeepEqual(tab.Headers, want) {
		t.Fatalf("expected normalized headers %v, got %v", want, tab.Headers)
	}
	if got := tab.Field(tab.Rows[0], "resourceid"); got != "R1" {
		t.Fatalf("case-insensitive lookup failed, got %q", got)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	p := writeTemp(t, "empty.csv", "ResourceID,Department,Tagged,MonthlyCostUSD\n")
	tab, err := dataset.Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tab.Len() != 0 {
		t.Fatalf("expected no rows, got %d", tab.Len())
	}
	if len(tab.Headers) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(tab.Headers))
	}
}

func TestUntaggedView(t *testing.T) {
	tab, err := dataset.Load(writeTemp(t, "costs.csv", cleanCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	un := tab.Untagged()
	if got := []string{dataset.ColResourceID, dataset.ColMonthlyCost}; !reflect.DeepEqual(un.Headers, got) {
		t.Fatalf("unexpected headers: %v", un.Headers)
	}
	if un.Len() != 1 || un.Rows[0][0] != "R2" || un.Rows[0][1] != "40.00" {
		t.Fatalf("unexpected untagged rows: %v", un.Rows)
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	tab, err := dataset.Load(writeTemp(t, "costs.csv", cleanCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "out.csv")
	if err := tab.ExportCSV(dest); err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := dataset.Load(dest)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(tab.Headers, back.Headers) || !reflect.DeepEqual(tab.Rows, back.Rows) {
		t.Fatalf("round trip mismatch")
	}
}
