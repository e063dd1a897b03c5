package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "Monstera Deliciosa", Price: 145, Quantity: 2},
		{ID: 2, Name: "Watering Can", Price: 45, Quantity: 1},
	}
	assert.Equal(t, 335.0, Subtotal(items))
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestTotalsWithTransportEmptyCart(t *testing.T) {
	totals := TotalsWithTransport(nil)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 8.0, totals.TransportFee)
	assert.Equal(t, 8.0, totals.Total)
}

func TestTotalsWithTransport(t *testing.T) {
	items := []Item{
		{ID: 1, Price: 65, Quantity: 3},
	}
	totals := TotalsWithTransport(items)
	assert.Equal(t, 195.0, totals.Subtotal)
	assert.Equal(t, TransportFee, totals.TransportFee)
	assert.Equal(t, totals.Subtotal+totals.TransportFee, totals.Total)
}
