package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// cliConfig holds the settings every command shares.
type cliConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
}

var (
	cfgFile   string
	appConfig cliConfig
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-cli",
	Short: "Operator tools for the portfolio content store",
	Long: `portfolio-cli exports, restores and seeds the document store behind the
portfolio site. It reads DATABASE_URL from the environment, a .env file or
--database-url.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("database-url", "", "document store URL (file:..., libsql://...)")

	rootCmd.AddCommand(newExportCmd(), newImportCmd(), newSeedCmd())
}

func initializeConfig(cmd *cobra.Command) error {
	base := config.Load()
	base.ConfigureLogging()

	v := viper.New()
	v.SetDefault("database_url", base.DatabaseURL)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		logrus.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlag("database_url", cmd.Root().PersistentFlags().Lookup("database-url")); err != nil {
		return err
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

func openStore() (ports.DocumentStore, error) {
	repo, err := sqlite.NewSQLiteRepository(appConfig.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return repo, nil
}
