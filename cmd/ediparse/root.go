package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ediclaims/internal/config"
)

var cfg config.Config

var configFile string

var rootCmd = &cobra.Command{
	Use:               "ediparse",
	Short:             "Healthcare claim EDI → JSON converter and warehouse loader",
	Long:              "Parses simplified X12 claim interchanges into JSON documents, with batch conversion, Postgres warehousing, and Parquet export.",
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			return err
		}
	}
	cfg.ApplyDefaults()
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "", "Log format: text or json (default text)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
}
