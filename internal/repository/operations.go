package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mesalista/backend/internal/model"
)

// OperationsRepository is the append-only audit trail in ClickHouse.
type OperationsRepository interface {
	Insert(ctx context.Context, op model.Operation) error
	ListRecent(ctx context.Context, opName string, customerID int64, limit, offset int) ([]model.Operation, error)
}

type operationsRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewOperationsRepository(ch *sqlx.DB) OperationsRepository {
	return &operationsRepository{ch: ch}
}

func (r *operationsRepository) Insert(ctx context.Context, op model.Operation) error {
	_, err := r.ch.ExecContext(ctx, `
		INSERT INTO mesalista.operations
		    (operation_id, op, customer_id, outcome, tx_hash, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, now())
	`, op.OperationID, op.Op, op.CustomerID, op.Outcome, op.TxHash, op.Detail)
	return err
}

func (r *operationsRepository) ListRecent(ctx context.Context, opName string, customerID int64, limit, offset int) ([]model.Operation, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `
		SELECT operation_id, op, customer_id, outcome, tx_hash, detail, created_at
		FROM mesalista.operations
		WHERE 1 = 1
	`
	args := []any{}

	if opName != "" {
		q += " AND op = ?"
		args = append(args, opName)
	}
	if customerID > 0 {
		q += " AND customer_id = ?"
		args = append(args, customerID)
	}

	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []model.Operation
	if err := r.ch.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
