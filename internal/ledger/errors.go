package ledger

import (
	"errors"
	"fmt"
)

// ErrReverted marks a transaction that was mined but failed on-chain.
var ErrReverted = errors.New("transaction reverted")

// TxError is a failed ledger write. When the node surfaces a revert reason it
// is carried inside Err.
type TxError struct {
	Method string
	TxHash string
	Err    error
}

func (e *TxError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("ledger %s (tx %s): %v", e.Method, e.TxHash, e.Err)
	}
	return fmt.Sprintf("ledger %s: %v", e.Method, e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }

// ReadError is a failed view call. Historical-list readers degrade to an
// empty result instead of propagating it.
type ReadError struct {
	Method string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("ledger read %s: %v", e.Method, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
