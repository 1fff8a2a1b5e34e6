package cmd

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cloudlens/tagscope/internal/dataset"
	"github.com/cloudlens/tagscope/internal/ui"
)

var dashTheme string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [file]",
	Short: "Open the interactive tagging dashboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sourcePath(args)
		t, err := dataset.Load(path)
		if err != nil {
			return err
		}
		theme := dashTheme
		if theme == "" {
			theme = cfg.Theme
		}
		m := ui.NewModel(t, filepath.Base(path), cfg.ExportDir, ui.ResolveTheme(theme))
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashTheme, "theme", "", "color theme: auto|light|dark (default from config)")
	rootCmd.AddCommand(dashboardCmd)
}
