package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ediclaims/internal/edi"
	"github.com/gyeh/ediclaims/internal/exitcode"
	"github.com/gyeh/ediclaims/internal/logging"
	"github.com/gyeh/ediclaims/internal/output"
	"github.com/gyeh/ediclaims/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <input>",
	Short: "Convert one claim file to a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", "", "Output path (default stdout)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	doc, summary := edi.NewParser(log).Parse(content)

	if err := output.WriteDocument(cfg.OutputPath, doc); err != nil {
		log.Error().Err(err).Msg("failed to write document")
		os.Exit(exitcode.UsageError)
	}

	log.Info().
		Int64("segments", summary.SegmentsSeen).
		Int64("claims", summary.ClaimsProduced).
		Int64("warnings", summary.Warnings).
		Str("duration", summary.Duration.String()).
		Msg("parse complete")

	return nil
}
