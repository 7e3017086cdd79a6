package main

import (
	"github.com/spf13/cobra"
)

// buildServeCmd creates the "serve" command that starts the HTTP API.
func buildServeCmd() *cobra.Command {
	var (
		addr    string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP evaluation API",
		Long: `Start the HTTP API.

Endpoints: /healthz, /api/criteria, /api/models, /api/evaluate, /api/batch,
/api/export/csv, /api/collections/{name}[/{id}] and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr, noStore)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to the configured one)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Disable the collection store endpoints")
	return cmd
}
