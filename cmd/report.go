package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/metrics"
)

var (
	repOutputPath string
	repTopN       int
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Compute the tagging audit summary and print or save it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sourcePath(args)
		t, err := dataset.Load(path)
		if err != nil {
			return err
		}
		topN := repTopN
		if topN <= 0 {
			topN = cfg.TopN
		}
		s := metrics.Build(t, filepath.Base(path), topN)
		md := s.Markdown()

		if repOutputPath != "" {
			if err := os.WriteFile(repOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", repOutputPath)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().IntVar(&repTopN, "top", 0, "number of lowest-completeness resources to list (default from config)")
	rootCmd.AddCommand(reportCmd)
}
