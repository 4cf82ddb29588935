package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

func newImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore documents from an export, keeping existing ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := runImport(cmd.Context(), store, f)
			if err != nil {
				return err
			}
			logrus.Infof("Imported %d documents", imported)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// runImport writes every dumped document whose id is not taken yet.
func runImport(ctx context.Context, store ports.DocumentStore, r io.Reader) (int, error) {
	var docs []ports.DumpedDocument
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return 0, fmt.Errorf("decode failed: %w", err)
	}

	count := 0
	for _, d := range docs {
		log := logrus.WithFields(logrus.Fields{"collection": d.Collection, "id": d.ID})
		if d.Collection == "" || d.ID == "" {
			log.Warn("Skipping document without collection or id")
			continue
		}

		existing, err := store.GetDocument(ctx, d.Collection, d.ID)
		if err != nil {
			return count, fmt.Errorf("check %s/%s: %w", d.Collection, d.ID, err)
		}
		if existing != nil {
			log.Info("Skipping existing document")
			continue
		}

		if err := store.SetDocument(ctx, d.Collection, d.ID, d.Fields); err != nil {
			log.WithError(err).Error("Failed to import")
			continue
		}
		count++
	}
	return count, nil
}
