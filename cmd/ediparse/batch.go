package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/ediclaims/internal/edi"
	"github.com/gyeh/ediclaims/internal/exitcode"
	"github.com/gyeh/ediclaims/internal/logging"
	"github.com/gyeh/ediclaims/internal/model"
	"github.com/gyeh/ediclaims/internal/output"
	"github.com/gyeh/ediclaims/internal/progress"
	"github.com/gyeh/ediclaims/internal/source"
	"github.com/gyeh/ediclaims/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input>...",
	Short: "Convert many claim files concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&cfg.Workers, "workers", 0, "Concurrent files (default 4)")
	f.StringVar(&cfg.OutputDir, "output-dir", "", "Directory for output documents (default alongside inputs)")
	f.BoolVar(&cfg.NoProgress, "no-progress", false, "Disable the progress display")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error().Err(err).Msg("failed to create output directory")
			os.Exit(exitcode.UsageError)
		}
	}

	var mgr progress.Manager
	if cfg.NoProgress {
		mgr = &progress.NoopManager{}
	} else {
		mgr = progress.NewMPBManager()
	}

	pool := &worker.Pool{Workers: cfg.Workers, Progress: mgr}
	outputs := planOutputs(args)

	start := time.Now()
	results := pool.Run(ctx, args, func(ctx context.Context, input string, tracker progress.Tracker) (string, int64, error) {
		tracker.SetStage("reading")
		content, err := source.ReadAll(ctx, input)
		if err != nil {
			return "", 0, err
		}

		tracker.SetStage("parsing")
		doc, sum := edi.NewParser(log).Parse(content)

		tracker.SetStage("writing")
		outPath := outputs[input]
		if err := output.WriteDocument(outPath, doc); err != nil {
			return "", 0, err
		}
		return outPath, sum.ClaimsProduced, nil
	})
	mgr.Wait()

	summary := model.BatchSummary{FilesTotal: len(results), Duration: time.Since(start)}
	for _, r := range results {
		if r.Err != nil {
			summary.FilesFailed++
			log.Error().Err(r.Err).Str("input", r.Input).Msg("conversion failed")
			continue
		}
		summary.FilesOK++
		summary.ClaimsTotal += r.Claims
	}

	log.Info().
		Int("files_total", summary.FilesTotal).
		Int("files_ok", summary.FilesOK).
		Int("files_failed", summary.FilesFailed).
		Int64("claims", summary.ClaimsTotal).
		Str("duration", summary.Duration.String()).
		Msg("batch complete")

	switch {
	case summary.FilesOK == 0 && summary.FilesFailed > 0:
		os.Exit(exitcode.UsageError)
	case summary.FilesFailed > 0:
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

// planOutputs assigns every input a distinct output path before any worker
// runs. Inputs that would land on the same path (same base name funneled
// into one --output-dir) get a numeric suffix in argument order; a repeated
// input keeps its first assignment.
func planOutputs(inputs []string) map[string]string {
	plan := make(map[string]string, len(inputs))
	taken := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		if _, ok := plan[input]; ok {
			continue
		}
		path := outputPathFor(input)
		if taken[path] {
			stem := strings.TrimSuffix(path, ".json")
			for n := 2; ; n++ {
				next := fmt.Sprintf("%s-%d.json", stem, n)
				if !taken[next] {
					path = next
					break
				}
			}
		}
		plan[input] = path
		taken[path] = true
	}
	return plan
}

// outputPathFor maps an input path to its JSON output location: same base
// name with .json, in --output-dir when set, else next to the input.
func outputPathFor(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, ".gz")
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	dir := cfg.OutputDir
	if dir == "" {
		if strings.HasPrefix(input, "s3://") {
			dir = "."
		} else {
			dir = filepath.Dir(input)
		}
	}
	return filepath.Join(dir, base+".json")
}
