package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/store"
)

// =============================================================================
// Store Commands
// =============================================================================

// buildStoreCmd creates the "store" command group for the local collection store.
func buildStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and manage the local collection store",
		Long: `Inspect and manage the local collection store.

Collections: ` + strings.Join(store.Collections, ", "),
	}
	cmd.AddCommand(
		buildStoreListCmd(),
		buildStoreGetCmd(),
		buildStoreImportCmd(),
		buildStoreExportCmd(),
		buildStoreDeleteCmd(),
	)
	return cmd
}

func buildStoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "List the records of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreList(cmd, args[0])
		},
	}
}

func buildStoreGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreGet(cmd, args[0], args[1])
		},
	}
}

func buildStoreImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace collections from a JSON export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreImport(cmd, args[0])
		},
	}
}

func buildStoreExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every collection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreExport(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to stdout)")
	return cmd
}

func buildStoreDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreDelete(cmd, args[0], args[1])
		},
	}
}
