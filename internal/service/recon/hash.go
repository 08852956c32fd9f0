package recon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PaymentHash digests the exact triple the two stores are cross-referenced
// by. It depends on the assigned relational id, so it can only be computed
// after the relational insert.
func PaymentHash(paymentID, customerID, amount int64) [32]byte {
	return sha256.Sum256(fmt.Appendf(nil, "%d-%d-%d", paymentID, customerID, amount))
}

// PaymentHashHex is the relational form of the same digest: 0x-prefixed hex,
// identical to the bytes32 submitted on-chain.
func PaymentHashHex(paymentID, customerID, amount int64) string {
	h := PaymentHash(paymentID, customerID, amount)
	return "0x" + hex.EncodeToString(h[:])
}
