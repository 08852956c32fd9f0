package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mesalista/backend/internal/model"
)

// PaymentsRepository is the relational payment log. Rows are append-only;
// the only mutation ever applied is the single hash back-fill.
type PaymentsRepository interface {
	Insert(ctx context.Context, customerID, amount int64) (int64, error)
	AttachHash(ctx context.Context, paymentID int64, hash string) error
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Payment, error)
	ListUnhashed(ctx context.Context, limit int) ([]model.Payment, error)
}

type PaymentsRepositoryImpl struct {
	db *sqlx.DB
}

func NewPaymentsRepository(db *sqlx.DB) *PaymentsRepositoryImpl {
	return &PaymentsRepositoryImpl{db: db}
}

var _ PaymentsRepository = (*PaymentsRepositoryImpl)(nil)

// Insert creates the row before any hash exists and returns the assigned id
// the hash is derived from.
func (r *PaymentsRepositoryImpl) Insert(ctx context.Context, customerID, amount int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (customer_id, amount, created_at)
		VALUES (?, ?, NOW())
	`, customerID, amount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *PaymentsRepositoryImpl) AttachHash(ctx context.Context, paymentID int64, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET hash = ? WHERE id = ?`, hash, paymentID)
	return err
}

// ListByCustomer returns payments in insertion order; the ledger history is
// compared against this order positionally.
func (r *PaymentsRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Payment, error) {
	var rows []model.Payment
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, amount, hash, created_at
		  FROM payments
		 WHERE customer_id = ?
		 ORDER BY id
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUnhashed finds rows whose ledger write never completed (NULL hash),
// the detectable half-finished state of RecordPayment.
func (r *PaymentsRepositoryImpl) ListUnhashed(ctx context.Context, limit int) ([]model.Payment, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	var rows []model.Payment
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, amount, hash, created_at
		  FROM payments
		 WHERE hash IS NULL
		 ORDER BY id
		 LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
