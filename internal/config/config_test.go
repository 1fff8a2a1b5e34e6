package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataFile != "cloudmart_multi_account.csv" {
		t.Fatalf("unexpected default data_file: %q", c.DataFile)
	}
	if c.TopN != 5 {
		t.Fatalf("unexpected default top_n: %d", c.TopN)
	}
	if c.ExportDir != "." {
		t.Fatalf("unexpected default export_dir: %q", c.ExportDir)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{DataFile: "costs.csv", TopN: 10, ExportDir: "exports", Theme: "dark"}
	if err := Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.DataFile != in.DataFile || out.TopN != in.TopN || out.Theme != in.Theme {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("TAGSCOPE_TOP_N", "9")
	defer os.Unsetenv("TAGSCOPE_TOP_N")

	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TopN != 9 {
		t.Fatalf("env override not applied, top_n=%d", c.TopN)
	}
}
