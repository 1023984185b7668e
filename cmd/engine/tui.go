package main

import (
	"github.com/spf13/cobra"

	"jobtracker-engine/internal/tui"
)

func newTUICmd(root *rootOptions) *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, logFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if exportDir == "" {
				exportDir = a.cfg.App.DataDir
			}
			return tui.Run(cmd.Context(), a.svc, tui.Options{
				ExportDir: exportDir,
				Windows:   a.svc.Windows(),
			})
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "where CSV exports are written (default data dir)")
	return cmd
}
