package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusCompleted},
		{OrderStatusProcessing, OrderStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionOrderStatus(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusCompleted, OrderStatusProcessing},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusCompleted, OrderStatusCancelled},
		{OrderStatusPending, OrderStatusPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionOrderStatus(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, IsOrderStatus(s))
	}
	assert.False(t, IsOrderStatus("shipped"))
	assert.False(t, IsOrderStatus(""))
}

func TestOrderJSONColumnsRoundtrip(t *testing.T) {
	customer := OrderCustomer{Name: "Amel", Email: "amel@example.com", Phone: "21612345", Address: "12 Rue des Jasmins", City: "Tunis"}
	items := OrderItems{
		{ID: 1, Name: "Monstera Deliciosa", Price: 145, Category: "indoor-plants", Quantity: 2},
	}

	cv, err := customer.Value()
	require.NoError(t, err)
	var gotCustomer OrderCustomer
	require.NoError(t, gotCustomer.Scan(cv))
	assert.Equal(t, customer, gotCustomer)

	iv, err := items.Value()
	require.NoError(t, err)
	var gotItems OrderItems
	require.NoError(t, gotItems.Scan(iv))
	assert.Equal(t, items, gotItems)

	// String scans (some drivers hand jsonb back as text).
	var fromString OrderItems
	require.NoError(t, fromString.Scan(string(iv.([]byte))))
	assert.Equal(t, items, fromString)
}

func TestOrderCustomerIsZero(t *testing.T) {
	assert.True(t, OrderCustomer{}.IsZero())
	assert.False(t, OrderCustomer{Name: "Amel"}.IsZero())
}
