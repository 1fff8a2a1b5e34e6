package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/cloudlens/tagscope/internal/config"
)

var (
	// Global flags (wired to config/viper)
	cfgFile  string
	dataFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tagscope",
	Short: "tagscope: cloud cost and tagging audit from a billing CSV",
	Long: `tagscope loads a CSV export of cloud resource cost and tagging records
and produces tagging-quality reports, cost breakdowns, CSV exports, and an
interactive remediation dashboard.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tagscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "file", "", "path to the cost/tagging CSV (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so commands with an explicit
		// --file still run.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{DataFile: "cloudmart_multi_account.csv", TopN: 5, ExportDir: "."}
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("file") && dataFile != "" {
		cfg.DataFile = dataFile
	}
}

// sourcePath resolves the dataset path from an optional positional argument,
// falling back to the configured data file.
func sourcePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.DataFile
}
