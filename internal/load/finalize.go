package load

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	embedsql "github.com/gyeh/ediclaims/internal/sql"
)

// Finalize flips the registry row to loaded and records the claim count and
// batch that produced it.
func Finalize(ctx context.Context, pool *pgxpool.Pool, pf *PreflightResult, claimCount int64) error {
	if _, err := pool.Exec(ctx, embedsql.FinalizeClaimFile, pf.ClaimFileID, claimCount, pf.LoadBatchID); err != nil {
		return fmt.Errorf("finalize claim file: %w", err)
	}
	return nil
}
