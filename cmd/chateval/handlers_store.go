package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/store"
)

// =============================================================================
// Store Command Handlers
// =============================================================================

func openStore() (*store.Store, error) {
	a, err := loadApp()
	if err != nil {
		return nil, err
	}
	return store.Open(a.cfg.Storage.Path, a.logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runStoreList(cmd *cobra.Command, collection string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.List(cmd.Context(), collection)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No records in %s.\n", collection)
		return nil
	}
	for _, rec := range records {
		name, _ := rec["name"].(string)
		fmt.Fprintf(out, "%s\t%s\n", rec.ID(), name)
	}
	return nil
}

func runStoreGet(cmd *cobra.Command, collection, id string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Get(cmd.Context(), collection, id)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), rec)
}

func runStoreImport(cmd *cobra.Command, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read import file %s: %w", file, err)
	}
	var dump map[string][]store.Record
	if err := json.Unmarshal(data, &dump); err != nil {
		return fmt.Errorf("failed to parse import file %s: %w", file, err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Import(cmd.Context(), dump); err != nil {
		return err
	}
	for name, records := range dump {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", len(records), name)
	}
	return nil
}

func runStoreExport(cmd *cobra.Command, outPath string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	dump, err := st.Export(cmd.Context())
	if err != nil {
		return err
	}

	if outPath == "" {
		return printJSON(cmd.OutOrStdout(), dump)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", outPath, err)
	}
	defer f.Close()
	return printJSON(f, dump)
}

func runStoreDelete(cmd *cobra.Command, collection, id string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), collection, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", collection, id)
	return nil
}
