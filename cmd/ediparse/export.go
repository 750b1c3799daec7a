package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gyeh/ediclaims/internal/edi"
	"github.com/gyeh/ediclaims/internal/exitcode"
	"github.com/gyeh/ediclaims/internal/export"
	"github.com/gyeh/ediclaims/internal/logging"
	"github.com/gyeh/ediclaims/internal/source"
)

var exportCmd = &cobra.Command{
	Use:   "export <input>",
	Short: "Parse a claim file and export service lines to Parquet",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&cfg.ExportPath, "out", "", "Output Parquet path (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	content, err := source.ReadAll(ctx, args[0])
	if err != nil {
		log.Error().Err(err).Msg("failed to read input")
		os.Exit(exitcode.UsageError)
	}

	doc, _ := edi.NewParser(log).Parse(content)

	n, err := export.WriteFile(cfg.ExportPath, doc, filepath.Base(args[0]))
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.ExportError)
	}

	rows, err := export.Verify(cfg.ExportPath)
	if err != nil {
		log.Error().Err(err).Msg("export verification failed")
		os.Exit(exitcode.ExportError)
	}

	log.Info().
		Int("rows_written", n).
		Int64("rows_verified", rows).
		Str("out", cfg.ExportPath).
		Msg("export complete")

	return nil
}
