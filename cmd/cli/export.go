package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every document as JSON to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			return runExport(cmd.Context(), store, os.Stdout)
		},
	}
}

func runExport(ctx context.Context, store ports.DocumentStore, w io.Writer) error {
	docs, err := store.Dump(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(docs)
}
