package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mesalista/backend/internal/model"
)

// CustomersRepository is the relational side of the customer record. All
// operations are single parameterized statements; there is deliberately no
// multi-statement transaction here.
type CustomersRepository interface {
	Insert(ctx context.Context, p model.Profile) (int64, error)
	Update(ctx context.Context, id int64, p model.Profile) error
	SetActive(ctx context.Context, id int64, active bool) error
	AttachLedgerAddress(ctx context.Context, id int64, address string) error
	AttachDocumentCID(ctx context.Context, id int64, cid string) error
	AttachTokenID(ctx context.Context, id int64, tokenID int64) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	ListRegistered(ctx context.Context, afterID int64, limit int) ([]model.Customer, error)
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

func (r *CustomersRepositoryImpl) Insert(ctx context.Context, p model.Profile) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (name, phone, email, address, card, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, TRUE, NOW(), NOW())
	`, p.Name, p.Phone, p.Email, p.Address, p.Card)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CustomersRepositoryImpl) Update(ctx context.Context, id int64, p model.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers
		   SET name = ?, phone = ?, email = ?, address = ?, card = ?, updated_at = NOW()
		 WHERE id = ?
	`, p.Name, p.Phone, p.Email, p.Address, p.Card, id)
	return err
}

func (r *CustomersRepositoryImpl) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET active = ?, updated_at = NOW() WHERE id = ?`, active, id)
	return err
}

func (r *CustomersRepositoryImpl) AttachLedgerAddress(ctx context.Context, id int64, address string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET blockchain_address = ?, updated_at = NOW() WHERE id = ?`, address, id)
	return err
}

func (r *CustomersRepositoryImpl) AttachDocumentCID(ctx context.Context, id int64, cid string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET document_cid = ?, updated_at = NOW() WHERE id = ?`, cid, id)
	return err
}

func (r *CustomersRepositoryImpl) AttachTokenID(ctx context.Context, id int64, tokenID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET token_id = ?, updated_at = NOW() WHERE id = ?`, tokenID, id)
	return err
}

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, phone, email, address, card, active,
		       blockchain_address, document_cid, token_id, created_at, updated_at
		  FROM customers
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all customers, active and inactive, for the main listing.
func (r *CustomersRepositoryImpl) List(ctx context.Context) ([]model.Customer, error) {
	var rows []model.Customer
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, phone, email, address, card, active,
		       blockchain_address, document_cid, token_id, created_at, updated_at
		  FROM customers
		 ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRegistered pages through customers that have a ledger attribution,
// for the reconciliation sweep.
func (r *CustomersRepositoryImpl) ListRegistered(ctx context.Context, afterID int64, limit int) ([]model.Customer, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	var rows []model.Customer
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, phone, email, address, card, active,
		       blockchain_address, document_cid, token_id, created_at, updated_at
		  FROM customers
		 WHERE blockchain_address IS NOT NULL AND id > ?
		 ORDER BY id
		 LIMIT ?
	`, afterID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
