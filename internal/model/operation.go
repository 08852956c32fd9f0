package model

import "time"

// Operation outcomes persisted in the audit trail.
const (
	OutcomeOK         = "ok"
	OutcomeError      = "error"
	OutcomeInvalid    = "invalid"
	OutcomeDivergence = "divergence"
)

// Operation is one protocol run, recorded append-only in ClickHouse and
// published to Kafka. OperationID is a ULID stamped by the protocol.
type Operation struct {
	OperationID string    `db:"operation_id" json:"operation_id"`
	Op          string    `db:"op" json:"op"`
	CustomerID  int64     `db:"customer_id" json:"customer_id"`
	Outcome     string    `db:"outcome" json:"outcome"`
	TxHash      string    `db:"tx_hash" json:"tx_hash,omitempty"`
	Detail      string    `db:"detail" json:"detail,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
