// Package load moves parsed claim documents into the Postgres warehouse.
// A load run is a pipeline of phases with a registry row tracking progress,
// so a crashed or failed run is visible and re-runnable.
package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/ediclaims/internal/edi"
	"github.com/gyeh/ediclaims/internal/model"
	"github.com/gyeh/ediclaims/internal/source"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full load pipeline: preflight → parse → stage → finalize.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", filePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, filePath, force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("claim_file_id", pf.ClaimFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to re-load)")
		return &model.LoadSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			ClaimFileID:   pf.ClaimFileID,
			LoadBatchID:   pf.LoadBatchID.String(),
			AlreadyLoaded: true,
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: Parse
	log.Info().Msg("starting parse")
	parseStart := time.Now()
	content, err := source.ReadAll(ctx, filePath)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.ClaimFileID, "failed")
		return nil, &PipelineError{Phase: "parse", Err: err}
	}
	doc, psum := edi.NewParser(log).Parse(content)
	parseDur := time.Since(parseStart)
	log.Info().
		Int64("segments", psum.SegmentsSeen).
		Int64("claims", psum.ClaimsProduced).
		Int64("warnings", psum.Warnings).
		Str("duration", parseDur.String()).
		Msg("parse complete")

	// Phase 3: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.ClaimFileID, "staging"); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, pf, doc)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.ClaimFileID, "failed")
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	// Phase 4: Finalize
	log.Info().Msg("finalizing")
	if err := Finalize(ctx, pool, pf, stageResult.Claims); err != nil {
		_ = UpdateStatus(ctx, pool, pf.ClaimFileID, "failed")
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary := &model.LoadSummary{
		FilePath:        pf.FilePath,
		FileSHA256:      pf.FileSHA256,
		ClaimFileID:     pf.ClaimFileID,
		LoadBatchID:     pf.LoadBatchID.String(),
		ClaimsLoaded:    stageResult.Claims,
		PartiesLoaded:   stageResult.Parties,
		DiagnosesLoaded: stageResult.Diagnoses,
		ServicesLoaded:  stageResult.Services,
		DurationParse:   parseDur,
		DurationStage:   stageResult.Duration,
		DurationTotal:   time.Since(totalStart),
	}

	log.Info().
		Int64("claims", summary.ClaimsLoaded).
		Int64("parties", summary.PartiesLoaded).
		Int64("diagnoses", summary.DiagnosesLoaded).
		Int64("services", summary.ServicesLoaded).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}
