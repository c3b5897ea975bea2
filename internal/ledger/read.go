package ledger

import (
	"context"
	"fmt"
)

// ListOperations returns operations ordered by seq ascending. A limit of
// zero or less returns everything.
func (l *Ledger) ListOperations(ctx context.Context, limit int) ([]Operation, error) {
	query := `
		SELECT id, seq, source_module, target_module, type_count, member_count, selection_hash, created_at
		FROM operations
		ORDER BY seq ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		if err := rows.Scan(
			&op.ID,
			&op.Seq,
			&op.SourceModule,
			&op.TargetModule,
			&op.TypeCount,
			&op.MemberCount,
			&op.SelectionHash,
			&op.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list operations: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	return ops, nil
}
