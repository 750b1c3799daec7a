package load

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/ediclaims/internal/normalize"
	embedsql "github.com/gyeh/ediclaims/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file, computed by normalize.FileHash.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// ClaimFileID is the DB primary key for this file's registry row, returned
	// by RegisterClaimFile (inserted, or looked up via sha256 when the digest
	// was already registered).
	ClaimFileID int64
	// LoadBatchID is a freshly generated UUIDv4 that uniquely identifies this
	// load run, recorded on every claim row it inserts.
	LoadBatchID uuid.UUID
	// AlreadyLoaded is true when the file's sha256 already exists in the DB
	// with status "loaded" and force mode is off, signaling the pipeline can
	// skip this file.
	AlreadyLoaded bool
}

// Preflight hashes the file and registers it in the claim_files registry,
// detecting duplicate loads by digest.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	claimFileID, alreadyLoaded, err := registerClaimFile(ctx, pool, filePath, sha, stat.Size(), force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("bytes", stat.Size()).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		ClaimFileID:   claimFileID,
		LoadBatchID:   uuid.New(),
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerClaimFile(ctx context.Context, pool *pgxpool.Pool, filePath, sha string, fileSize int64, force bool) (int64, bool, error) {
	var id int64
	err := pool.QueryRow(ctx, embedsql.RegisterClaimFile, filepath.Base(filePath), sha, fileSize).Scan(&id)

	if err == pgx.ErrNoRows {
		// Already registered (ON CONFLICT DO NOTHING returned no rows)
		var status string
		if err2 := pool.QueryRow(ctx, embedsql.LookupClaimFile, sha).Scan(&id, &status); err2 != nil {
			return 0, false, fmt.Errorf("lookup existing claim_file: %w", err2)
		}

		if !force && status == "loaded" {
			return id, true, nil
		}

		// Clear prior rows and reset status for re-load
		if _, err3 := pool.Exec(ctx, embedsql.DeleteClaimRows, id); err3 != nil {
			return 0, false, fmt.Errorf("delete prior claim rows: %w", err3)
		}
		if _, err3 := pool.Exec(ctx, embedsql.UpdateClaimFileStatus, id, "pending"); err3 != nil {
			return 0, false, fmt.Errorf("reset claim_file status: %w", err3)
		}
		return id, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("register claim file: %w", err)
	}

	return id, false, nil
}
