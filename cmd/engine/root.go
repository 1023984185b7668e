package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dataDir    string
	configPath string
	logLevel   string
	dev        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jobtracker",
		Short: "Track job applications, deadlines and interviews",
		Long: `jobtracker keeps a table of job applications in a remote JSON document,
with a local CSV file and JSON backup as fallback. Run "serve" for the HTTP
API or "tui" for the terminal interface.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real environment variables win
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.dataDir, "data-dir", "d", "", "data directory (default $JOBTRACKER_DATA_DIR or .)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default <data-dir>/config.yml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.dev, "dev", false, "human-readable console logs")

	cmd.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newSeedCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}
