package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write sample applications into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, logStderr)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d applications (%s)\n", m.Rows, m.Save.Status)
			return nil
		},
	}
}
