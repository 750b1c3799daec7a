package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CopySession is the subset of pgx.Tx needed for bulk COPY, so loaders can
// run inside a transaction without depending on the full interface.
type CopySession interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// CopyInto bulk-inserts rows into table via the COPY protocol.
func CopyInto(ctx context.Context, sess CopySession, table pgx.Identifier, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := sess.CopyFrom(ctx, table, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table.Sanitize(), err)
	}
	return n, nil
}
