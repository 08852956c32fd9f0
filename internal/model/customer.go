package model

import (
	"database/sql"
	"time"
)

// Customer is the relational row: the authoritative mutable profile plus the
// linkage fields that tie it to the ledger mirror and generated assets.
type Customer struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`
	Address string `db:"address" json:"address"`
	Card    string `db:"card" json:"card"`
	Active  bool   `db:"active" json:"active"`

	// Linkage fields, all nullable until the corresponding step runs.
	LedgerAddress sql.NullString `db:"blockchain_address" json:"blockchain_address"`
	DocumentCID   sql.NullString `db:"document_cid" json:"document_cid"`
	TokenID       sql.NullInt64  `db:"token_id" json:"token_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Profile carries the mutable profile fields accepted on create/update.
type Profile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Card    string `json:"card"`
}

// LedgerCustomer is the decoded on-chain mirror of a customer.
type LedgerCustomer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Card    string `json:"card"`
	Active  bool   `json:"active"`
}
