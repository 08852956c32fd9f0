package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/service/recon"
)

// sweepCustomers serves registered customers in id order, in pages.
type sweepCustomers struct {
	rows []model.Customer

	listCalls int
}

func (f *sweepCustomers) Insert(ctx context.Context, p model.Profile) (int64, error) { return 0, nil }
func (f *sweepCustomers) Update(ctx context.Context, id int64, p model.Profile) error {
	return nil
}
func (f *sweepCustomers) SetActive(ctx context.Context, id int64, active bool) error { return nil }
func (f *sweepCustomers) AttachLedgerAddress(ctx context.Context, id int64, address string) error {
	return nil
}
func (f *sweepCustomers) AttachDocumentCID(ctx context.Context, id int64, cid string) error {
	return nil
}
func (f *sweepCustomers) AttachTokenID(ctx context.Context, id int64, tokenID int64) error {
	return nil
}

func (f *sweepCustomers) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			c := f.rows[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *sweepCustomers) List(ctx context.Context) ([]model.Customer, error) { return f.rows, nil }

func (f *sweepCustomers) ListRegistered(ctx context.Context, afterID int64, limit int) ([]model.Customer, error) {
	f.listCalls++
	var out []model.Customer
	for _, c := range f.rows {
		if c.ID > afterID && c.LedgerAddress.Valid {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type sweepPayments struct {
	unhashed []model.Payment
}

func (f *sweepPayments) Insert(ctx context.Context, customerID, amount int64) (int64, error) {
	return 0, errors.New("read only")
}
func (f *sweepPayments) AttachHash(ctx context.Context, paymentID int64, hash string) error {
	return errors.New("read only")
}
func (f *sweepPayments) ListByCustomer(ctx context.Context, customerID int64) ([]model.Payment, error) {
	return nil, nil
}
func (f *sweepPayments) ListUnhashed(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.unhashed, nil
}

// sweepGateway mirrors every customer faithfully, so sweeps find nothing.
type sweepGateway struct{}

func (g *sweepGateway) RegisterCustomer(ctx context.Context, id int64, p model.Profile) (*ledger.Receipt, error) {
	return nil, errors.New("read only")
}
func (g *sweepGateway) SetStatus(ctx context.Context, id int64, active bool) (*ledger.Receipt, error) {
	return nil, errors.New("read only")
}
func (g *sweepGateway) RecordPayment(ctx context.Context, customerID int64, hash [32]byte, amount int64) (*ledger.Receipt, error) {
	return nil, errors.New("read only")
}
func (g *sweepGateway) GetCustomer(ctx context.Context, id int64) (*model.LedgerCustomer, error) {
	return &model.LedgerCustomer{ID: id, Name: fmt.Sprintf("Customer %d", id), Active: true}, nil
}
func (g *sweepGateway) GetHistory(ctx context.Context, customerID int64) ([]model.LedgerPayment, error) {
	return nil, nil
}

func registeredCustomer(id int64) model.Customer {
	return model.Customer{
		ID:            id,
		Name:          fmt.Sprintf("Customer %d", id),
		LedgerAddress: sql.NullString{String: "0xabcdef0123456789abcdef0123456789abcdef01", Valid: true},
		Active:        true,
	}
}

func TestSweep_PagesThroughRegisteredCustomers(t *testing.T) {
	customers := &sweepCustomers{}
	for i := int64(1); i <= 5; i++ {
		customers.rows = append(customers.rows, registeredCustomer(i))
	}
	payments := &sweepPayments{}

	svc := recon.New(customers, payments, &sweepGateway{}, nil, nil, nil, nil, nil)
	rec := NewReconciler(customers, payments, svc, 0, 2, nil)

	require.NoError(t, rec.Sweep(context.Background()))

	// 5 rows at page size 2: three pages, the last one short
	assert.Equal(t, 3, customers.listCalls)
}

func TestSweep_SkipsUnregisteredCustomers(t *testing.T) {
	customers := &sweepCustomers{rows: []model.Customer{
		registeredCustomer(1),
		{ID: 2, Name: "Never registered"},
		registeredCustomer(3),
	}}
	payments := &sweepPayments{}

	svc := recon.New(customers, payments, &sweepGateway{}, nil, nil, nil, nil, nil)
	rec := NewReconciler(customers, payments, svc, 0, 10, nil)

	require.NoError(t, rec.Sweep(context.Background()))
	assert.Equal(t, 1, customers.listCalls)
}

func TestSweep_ReportsUnhashedPayments(t *testing.T) {
	customers := &sweepCustomers{}
	payments := &sweepPayments{unhashed: []model.Payment{
		{ID: 11, CustomerID: 1, Amount: 500},
	}}

	svc := recon.New(customers, payments, &sweepGateway{}, nil, nil, nil, nil, nil)
	rec := NewReconciler(customers, payments, svc, 0, 10, nil)

	require.NoError(t, rec.Sweep(context.Background()))
}

func TestNewReconciler_Defaults(t *testing.T) {
	rec := NewReconciler(nil, nil, nil, 0, 0, nil)
	assert.Equal(t, 5*60.0, rec.Interval.Seconds())
	assert.Equal(t, 100, rec.PageSize)
	assert.NotNil(t, rec.Log)
}
