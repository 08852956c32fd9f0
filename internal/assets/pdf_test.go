package assets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesalista/backend/internal/model"
)

func TestCustomerReport_ProducesPDF(t *testing.T) {
	r := NewPDFRenderer()

	data, err := r.CustomerReport(model.Customer{
		ID:    7,
		Name:  "Ana Morales",
		Phone: "+52 55 1111 0001",
		Email: "ana.morales@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestCustomerReport_DeterministicSizeOrder(t *testing.T) {
	r := NewPDFRenderer()

	a, err := r.CustomerReport(model.Customer{ID: 1, Name: "A"})
	require.NoError(t, err)
	b, err := r.CustomerReport(model.Customer{ID: 1, Name: "A much longer customer name than before"})
	require.NoError(t, err)

	// both render the same layout; neither is empty
	assert.Greater(t, len(a), 500)
	assert.Greater(t, len(b), 500)
}
