package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/ediclaims/internal/edi"
	"github.com/gyeh/ediclaims/internal/exitcode"
	"github.com/gyeh/ediclaims/internal/logging"
	"github.com/gyeh/ediclaims/internal/normalize"
	"github.com/gyeh/ediclaims/internal/source"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Parse a claim file and print a run report (no output document)",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	content, err := source.ReadAll(ctx, args[0])
	if err != nil {
		log.Error().Err(err).Msg("failed to read input")
		os.Exit(exitcode.UsageError)
	}

	doc, summary := edi.NewParser(log).Parse(content)

	var diagnoses int
	for _, c := range doc.Claims {
		diagnoses += len(c.Diagnoses)
	}

	fmt.Println("=== ediparse inspect ===")
	fmt.Printf("Input:            %s\n", args[0])
	fmt.Printf("Content SHA-256:  %s\n", normalize.ContentHash([]byte(content)))
	fmt.Printf("Content bytes:    %d\n", len(content))
	fmt.Println()
	fmt.Printf("Segments seen:    %d\n", summary.SegmentsSeen)
	fmt.Printf("Segments applied: %d\n", summary.SegmentsApplied)
	fmt.Printf("Segments skipped: %d\n", summary.SegmentsSkipped)
	fmt.Printf("Warnings:         %d\n", summary.Warnings)

	if len(summary.SkipsByReason) > 0 {
		fmt.Println()
		fmt.Println("Skips by reason:")
		reasons := make([]string, 0, len(summary.SkipsByReason))
		for reason := range summary.SkipsByReason {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Printf("  %-20s %d\n", reason, summary.SkipsByReason[reason])
		}
	}

	fmt.Println()
	fmt.Printf("Claims:           %d\n", summary.ClaimsProduced)
	fmt.Printf("Service lines:    %d\n", summary.ServiceLines)
	fmt.Printf("Diagnoses:        %d\n", diagnoses)
	fmt.Printf("Parse time:       %s\n", summary.Duration)

	return nil
}
