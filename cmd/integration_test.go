package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/cloudlens/tagscope/internal/config"
)

const sampleCSV = "ResourceID,Department,Project,Owner,CostCenter,Service,Region,Environment,Tagged,MonthlyCostUSD\n" +
	"R1,Eng,ProjA,Alice,CC1,EC2,us-east,prod,Yes,120.50\n" +
	"R2,,,,,S3,us-west,dev,No,40.00\n"

func setupDataFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "costs.csv")
	if err := os.WriteFile(p, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg = &cfgpkg.Global{DataFile: p, TopN: 5, ExportDir: dir}
	return p
}

func TestReportCommandWritesFile(t *testing.T) {
	p := setupDataFile(t)
	out := filepath.Join(filepath.Dir(p), "report.md")
	repOutputPath = out
	defer func() { repOutputPath = "" }()

	if err := reportCmd.RunE(reportCmd, []string{p}); err != nil {
		t.Fatalf("report: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, want := range []string{"[TAGGING AUDIT]", "Untagged share of cost: 24.92%", "- R2: 40.00"} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
}

func TestExportUntaggedCommand(t *testing.T) {
	p := setupDataFile(t)
	out := filepath.Join(filepath.Dir(p), "untagged.csv")
	expOutputPath = out
	defer func() { expOutputPath = "" }()

	if err := exportCmd.RunE(exportCmd, []string{"untagged", p}); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	got := string(b)
	if got != "ResourceID,MonthlyCostUSD\nR2,40.00\n" {
		t.Fatalf("unexpected export content:\n%s", got)
	}
}

func TestExportRejectsUnknownKind(t *testing.T) {
	p := setupDataFile(t)
	if err := exportCmd.RunE(exportCmd, []string{"everything", p}); err == nil {
		t.Fatal("expected error for unknown export kind")
	}
}

func TestRemediateCommandExportsMergedDataset(t *testing.T) {
	p := setupDataFile(t)
	dir := filepath.Dir(p)

	edits := "R2:\n  department: Ops\n  project: ProjB\n  owner: Carol\n  cost_center: CC2\n"
	editsPath := filepath.Join(dir, "edits.yaml")
	if err := os.WriteFile(editsPath, []byte(edits), 0o644); err != nil {
		t.Fatalf("write edits: %v", err)
	}

	out := filepath.Join(dir, "remediated.csv")
	remEditsPath = editsPath
	remOutputPath = out
	defer func() { remEditsPath = ""; remOutputPath = "" }()

	if err := remediateCmd.RunE(remediateCmd, []string{p}); err != nil {
		t.Fatalf("remediate: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read merged export: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, "R2,Ops,ProjB,Carol,CC2,S3,us-west,dev,Yes,40.00") {
		t.Fatalf("merged export missing remediated row:\n%s", got)
	}
}

func TestExportRemediatedRequiresEdits(t *testing.T) {
	p := setupDataFile(t)
	expEditsPath = ""
	if err := exportCmd.RunE(exportCmd, []string{"remediated", p}); err == nil {
		t.Fatal("expected error when --edits is missing")
	}
}

func TestConfigSetPersistsValue(t *testing.T) {
	setupDataFile(t)
	cfgFile = filepath.Join(t.TempDir(), "config.yaml")
	defer func() { cfgFile = "" }()

	if err := configSetCmd.RunE(configSetCmd, []string{"top_n", "7"}); err != nil {
		t.Fatalf("config set: %v", err)
	}
	saved, err := cfgpkg.Load(cfgFile)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if saved.TopN != 7 {
		t.Fatalf("expected top_n 7, got %d", saved.TopN)
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	setupDataFile(t)
	cfgFile = filepath.Join(t.TempDir(), "config.yaml")
	defer func() { cfgFile = "" }()

	if err := configSetCmd.RunE(configSetCmd, []string{"top_n", "many"}); err == nil {
		t.Fatal("expected error for non-integer top_n")
	}
	if err := configSetCmd.RunE(configSetCmd, []string{"theme", "sepia"}); err == nil {
		t.Fatal("expected error for unknown theme")
	}
	if err := configSetCmd.RunE(configSetCmd, []string{"favorite_color", "teal"}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestRemediateRequiresEdits(t *testing.T) {
	p := setupDataFile(t)
	remEditsPath = ""
	if err := remediateCmd.RunE(remediateCmd, []string{p}); err == nil {
		t.Fatal("expected error when --edits is missing")
	}
}
