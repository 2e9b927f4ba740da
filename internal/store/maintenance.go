package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Reset deletes every drawing and compacts the file. The schema is kept so
// the library stays usable. It returns how many drawings were removed.
func (r *DrawingRepo) Reset(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("reset: db not configured")
	}
	var n int64
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shapes`); err != nil {
			return fmt.Errorf("reset table shapes: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM drawings`)
		if err != nil {
			return fmt.Errorf("reset table drawings: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	_, _ = r.db.ExecContext(ctx, "VACUUM")
	return int(n), nil
}
