package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccount(t *testing.T) {
	valid := []string{
		"0xabcdef0123456789abcdef0123456789abcdef01",
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01",
		"0xAbCdEf0123456789aBcDeF0123456789AbCdEf01",
		"  0xabcdef0123456789abcdef0123456789abcdef01  ",
	}
	for _, s := range valid {
		assert.True(t, ValidAccount(s), "%q", s)
	}

	invalid := []string{
		"",
		"0x",
		"0x123",
		"abcdef0123456789abcdef0123456789abcdef01",
		"0xabcdef0123456789abcdef0123456789abcdef0",
		"0xabcdef0123456789abcdef0123456789abcdef012",
		"0xZZcdef0123456789abcdef0123456789abcdef01",
	}
	for _, s := range invalid {
		assert.False(t, ValidAccount(s), "%q", s)
	}
}

func TestNormalizeAccount(t *testing.T) {
	assert.Equal(t,
		"0xabcdef0123456789abcdef0123456789abcdef01",
		NormalizeAccount("  0xABCDEF0123456789abcdef0123456789ABCDEF01\n"))
}

func TestSameAccount(t *testing.T) {
	assert.True(t, SameAccount(
		"0xabcdef0123456789abcdef0123456789abcdef01",
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01"))
	assert.True(t, SameAccount(
		" 0xabcdef0123456789abcdef0123456789abcdef01 ",
		"0xabcdef0123456789abcdef0123456789abcdef01"))
	assert.False(t, SameAccount(
		"0xabcdef0123456789abcdef0123456789abcdef01",
		"0x1111111111111111111111111111111111111111"))
}
