package recon

import "fmt"

// The protocol error taxonomy. A divergence is never one of these: it is a
// reported finding carried in the Validate reports, not a failure of either
// store.

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StoreError is a failed relational call. Prior completed steps of the same
// operation are not rolled back.
type StoreError struct {
	Step string
	Err  error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Step, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// LedgerError is a reverted transaction or an unreachable gateway. Same
// non-rollback policy as StoreError.
type LedgerError struct {
	Step string
	Err  error
}

func (e *LedgerError) Error() string { return fmt.Sprintf("ledger %s: %v", e.Step, e.Err) }
func (e *LedgerError) Unwrap() error { return e.Err }
