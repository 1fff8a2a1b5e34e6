package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/metrics"
	"github.com/cloudlens/tagscope/internal/remediate"
)

var (
	remEditsPath  string
	remOutputPath string
)

var remediateCmd = &cobra.Command{
	Use:   "remediate [file]",
	Short: "Apply tag edits, re-derive the Tagged flag, and report the result",
	Long: `remediate applies an edits YAML file to the untagged records of the
dataset, re-derives each edited record's Tagged flag from tag-field
completeness, merges the result with the already-tagged records, and prints
the post-remediation cost summary. With --output the merged dataset is also
exported as CSV.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if remEditsPath == "" {
			return fmt.Errorf("--edits is required")
		}
		path := sourcePath(args)
		t, err := dataset.Load(path)
		if err != nil {
			return err
		}
		edits, err := remediate.LoadEdits(remEditsPath)
		if err != nil {
			return err
		}
		merged, warnings := remediate.Apply(t, edits)
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
		}

		before := metrics.PercentUntaggedCost(t)
		after := metrics.PercentUntaggedCost(merged)
		counts := metrics.CountByTagStatus(merged)
		costs := metrics.CostByTagStatus(merged)

		fmt.Println("[REMEDIATION SUMMARY]")
		fmt.Printf("Resources: %d tagged, %d untagged\n", counts[dataset.FlagYes], counts[dataset.FlagNo])
		fmt.Printf("Cost tagged: %.2f, untagged: %.2f\n", costs[dataset.FlagYes], costs[dataset.FlagNo])
		fmt.Printf("Untagged share of cost: %.2f%% (was %.2f%%)\n", after, before)

		if remOutputPath != "" {
			if err := merged.ExportCSV(remOutputPath); err != nil {
				return err
			}
			fmt.Printf("✓ Exported remediated dataset to %s\n", filepath.Clean(remOutputPath))
		}
		return nil
	},
}

func init() {
	remediateCmd.Flags().StringVar(&remEditsPath, "edits", "", "edits YAML mapping ResourceID to tag-field values")
	remediateCmd.Flags().StringVarP(&remOutputPath, "output", "o", "", "export the merged dataset CSV to this path")
	rootCmd.AddCommand(remediateCmd)
}
