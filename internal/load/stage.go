package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/ediclaims/internal/db"
	"github.com/gyeh/ediclaims/internal/model"
	embedsql "github.com/gyeh/ediclaims/internal/sql"
)

// StageResult holds metrics from the staging phase.
type StageResult struct {
	Claims    int64
	Parties   int64
	Diagnoses int64
	Services  int64
	Duration  time.Duration
}

// Stage writes the parsed document into the warehouse in one transaction.
// Claims go row by row to collect their generated keys; child tables go
// through the COPY protocol.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, doc *model.Document) (*StageResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("stage begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var partyRows, diagnosisRows, serviceRows [][]any

	for seq, claim := range doc.Claims {
		var claimID int64
		args := claimInsertArgs(claim, pf.ClaimFileID, pf.LoadBatchID, seq)
		if err := tx.QueryRow(ctx, embedsql.InsertClaim, args...).Scan(&claimID); err != nil {
			return nil, fmt.Errorf("insert claim %d: %w", seq, err)
		}
		partyRows = append(partyRows, partyRowsFor(claimID, claim)...)
		diagnosisRows = append(diagnosisRows, diagnosisRowsFor(claimID, claim)...)
		serviceRows = append(serviceRows, serviceRowsFor(claimID, claim)...)
	}

	parties, err := db.CopyInto(ctx, tx, pgx.Identifier{"edi", "claim_parties"}, partyColumns(), partyRows)
	if err != nil {
		return nil, err
	}
	diagnoses, err := db.CopyInto(ctx, tx, pgx.Identifier{"edi", "claim_diagnoses"}, diagnosisColumns(), diagnosisRows)
	if err != nil {
		return nil, err
	}
	services, err := db.CopyInto(ctx, tx, pgx.Identifier{"edi", "claim_services"}, serviceColumns(), serviceRows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("stage commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int("claims", len(doc.Claims)).
		Int64("parties", parties).
		Int64("diagnoses", diagnoses).
		Int64("services", services).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		Claims:    int64(len(doc.Claims)),
		Parties:   parties,
		Diagnoses: diagnoses,
		Services:  services,
		Duration:  dur,
	}, nil
}

// UpdateStatus updates the claim_file status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, claimFileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateClaimFileStatus, claimFileID, status)
	return err
}
