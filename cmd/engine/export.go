package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jobtracker-engine/internal/views"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		out string
		f   views.Filter
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the (filtered) table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, logStderr)
			if err != nil {
				return err
			}
			defer a.Close()

			var filter *views.Filter
			if len(f.Statuses)+len(f.Priorities)+len(f.Channels) > 0 || f.Search != "" {
				filter = &f
			}

			if out == "-" {
				_, _, err := a.svc.Export(cmd.Context(), filter, cmd.OutOrStdout())
				return err
			}

			var buf bytes.Buffer
			name, n, err := a.svc.Export(cmd.Context(), filter, &buf)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = name
			} else if st, err := os.Stat(path); err == nil && st.IsDir() {
				path = filepath.Join(path, name)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", n, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file or directory to write; - for stdout (default ./<generated name>)")
	cmd.Flags().StringSliceVar(&f.Statuses, "status", nil, "keep only these statuses")
	cmd.Flags().StringSliceVar(&f.Priorities, "priority", nil, "keep only these priorities")
	cmd.Flags().StringSliceVar(&f.Channels, "channel", nil, "keep only these channels")
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive match on company or job title")
	return cmd
}
