package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
	"gopkg.in/yaml.v3"
)

func newSeedCmd() *cobra.Command {
	var (
		file  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill empty sections with the built-in portfolio or a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			content := services.DefaultSeed()
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read seed file: %w", err)
				}
				if content, err = parseSeed(data); err != nil {
					return err
				}
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := services.Seed(cmd.Context(), store, content, force)
			for kind, n := range report.Written {
				logrus.WithField("kind", kind).Infof("Seeded %d documents", n)
			}
			for _, kind := range report.Skipped {
				logrus.WithField("kind", kind).Info("Skipped, already has content (use --force)")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with hero, about, services, projects, experience and skills")
	cmd.Flags().BoolVar(&force, "force", false, "write sections that already have content")
	return cmd
}

// parseSeed reads a YAML seed file. Keys follow the JSON field names, so an
// export of one section can be pasted in as-is.
func parseSeed(data []byte) (services.SeedContent, error) {
	var content services.SeedContent

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return content, fmt.Errorf("parse seed file: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return content, fmt.Errorf("parse seed file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&content); err != nil {
		return content, fmt.Errorf("parse seed file: %w", err)
	}
	return content, nil
}
