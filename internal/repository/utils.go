package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hearthvale/craftforge/internal/logger"
)

// SafeRollback rolls back a transaction and logs unexpected failures.
// Rolling back an already-committed transaction is a no-op here since
// pgx reports ErrTxClosed, which we ignore.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
