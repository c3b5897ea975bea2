package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Operation is one recorded graft pipeline run.
type Operation struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	SourceModule  string `json:"source_module"`
	TargetModule  string `json:"target_module"`
	TypeCount     int    `json:"type_count"`
	MemberCount   int    `json:"member_count"`
	SelectionHash string `json:"selection_hash"`
	CreatedAt     string `json:"created_at"` // RFC 3339 UTC
}

// NewOperation stamps an operation record with a UUIDv7 ID and the
// current UTC time. Seq is assigned on write.
func NewOperation(source, target string, typeCount, memberCount int, selectionHash string) Operation {
	return Operation{
		ID:            uuid.Must(uuid.NewV7()).String(),
		SourceModule:  source,
		TargetModule:  target,
		TypeCount:     typeCount,
		MemberCount:   memberCount,
		SelectionHash: selectionHash,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// WriteOperation appends an operation to the ledger, assigning the next
// per-ledger seq. Uses ON CONFLICT(id) DO NOTHING: re-writing the same
// operation ID is a silent no-op.
func (l *Ledger) WriteOperation(ctx context.Context, op Operation) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write operation: %w", err)
	}
	defer tx.Rollback()

	var maxSeq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM operations`).Scan(&maxSeq); err != nil {
		return fmt.Errorf("write operation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO operations
		(id, seq, source_module, target_module, type_count, member_count, selection_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		op.ID,
		maxSeq+1,
		op.SourceModule,
		op.TargetModule,
		op.TypeCount,
		op.MemberCount,
		op.SelectionHash,
		op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("write operation: %w", err)
	}

	return tx.Commit()
}
