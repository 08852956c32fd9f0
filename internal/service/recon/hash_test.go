package recon

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentHash_Deterministic(t *testing.T) {
	a := PaymentHash(1, 2, 300)
	b := PaymentHash(1, 2, 300)
	assert.Equal(t, a, b)
}

func TestPaymentHash_DigestsTheDashJoinedTriple(t *testing.T) {
	want := sha256.Sum256([]byte("12-7-2500"))
	assert.Equal(t, want, PaymentHash(12, 7, 2500))
}

func TestPaymentHash_SensitiveToEveryField(t *testing.T) {
	base := PaymentHash(1, 2, 300)
	assert.NotEqual(t, base, PaymentHash(2, 2, 300))
	assert.NotEqual(t, base, PaymentHash(1, 3, 300))
	assert.NotEqual(t, base, PaymentHash(1, 2, 301))
}

func TestPaymentHash_FieldOrderMatters(t *testing.T) {
	// swapping payment and customer ids must change the digest
	assert.NotEqual(t, PaymentHash(1, 2, 300), PaymentHash(2, 1, 300))
}

func TestPaymentHashHex_MatchesRawDigest(t *testing.T) {
	raw := PaymentHash(42, 7, 999)
	hex := PaymentHashHex(42, 7, 999)

	require.True(t, strings.HasPrefix(hex, "0x"))
	assert.Len(t, hex, 66)
	assert.Equal(t, fmt.Sprintf("0x%x", raw), hex)
}
