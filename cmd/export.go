package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/remediate"
	"github.com/cloudlens/tagscope/internal/utils"
)

var (
	expOutputPath string
	expEditsPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export <untagged|remediated> [file]",
	Short: "Export the untagged-resources or remediated dataset CSV",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		path := sourcePath(args[1:])
		t, err := dataset.Load(path)
		if err != nil {
			return err
		}

		var out *dataset.Table
		var defaultName string
		switch kind {
		case "untagged":
			out = t.Untagged()
			defaultName = "untagged_resources.csv"
		case "remediated":
			if expEditsPath == "" {
				return fmt.Errorf("--edits is required for a remediated export")
			}
			edits, err := remediate.LoadEdits(expEditsPath)
			if err != nil {
				return err
			}
			var warnings []string
			out, warnings = remediate.Apply(t, edits)
			defaultName = "remediated_cloud_costs.csv"
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
			}
		default:
			return fmt.Errorf("unknown export kind %q (use untagged|remediated)", kind)
		}

		dest := expOutputPath
		if dest == "" {
			if err := utils.EnsureDir(cfg.ExportDir); err != nil {
				return fmt.Errorf("ensure export dir: %w", err)
			}
			dest = filepath.Join(cfg.ExportDir, defaultName)
		}
		if err := out.ExportCSV(dest); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d rows to %s\n", out.Len(), dest)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&expOutputPath, "output", "o", "", "destination path (default derived from export kind)")
	exportCmd.Flags().StringVar(&expEditsPath, "edits", "", "edits YAML to apply before a remediated export")
	rootCmd.AddCommand(exportCmd)
}
