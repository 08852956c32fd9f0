package model

import (
	"database/sql"
	"time"
)

// Payment is the relational append-only payment row. Hash is NULL until the
// ledger write succeeds and the back-fill runs; a row with a NULL hash is a
// payment present relationally but (possibly) absent on the ledger.
type Payment struct {
	ID         int64          `db:"id" json:"id"`
	CustomerID int64          `db:"customer_id" json:"customer_id"`
	Amount     int64          `db:"amount" json:"amount"`
	Hash       sql.NullString `db:"hash" json:"hash"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// LedgerPayment is one decoded entry of the on-chain history.
type LedgerPayment struct {
	CustomerID int64  `json:"customer_id"`
	Hash       string `json:"hash"`
	Amount     int64  `json:"amount"`
	Timestamp  int64  `json:"timestamp"`
}
