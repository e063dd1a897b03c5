package webapi

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOrderPayload(t *testing.T) {
	valid := orderPayload{
		Customer: domain.OrderCustomer{Name: "Amel", Phone: "21612345"},
		Items:    []domain.OrderItem{{ID: 1, Name: "Monstera Deliciosa", Price: 145, Quantity: 1}},
	}
	assert.NoError(t, validateOrderPayload(valid))

	noCustomer := valid
	noCustomer.Customer = domain.OrderCustomer{}
	assert.Error(t, validateOrderPayload(noCustomer))

	noItems := valid
	noItems.Items = nil
	assert.Error(t, validateOrderPayload(noItems))

	emptyItems := valid
	emptyItems.Items = []domain.OrderItem{}
	assert.Error(t, validateOrderPayload(emptyItems))
}

func TestNewOrderID(t *testing.T) {
	at := time.UnixMilli(1756713600000)
	id := newOrderID(at)
	assert.Equal(t, "ORD-1756713600000", id)

	millis, err := strconv.ParseInt(strings.TrimPrefix(id, "ORD-"), 10, 64)
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), millis)
}

func TestOrderResponseDate(t *testing.T) {
	order := domain.Order{
		ID:            "ORD-1756713600000",
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCOD,
		Subtotal:      290,
		TransportFee:  8,
		Total:         298,
		CreatedAt:     time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
	}
	resp := orderResponse(order)
	assert.Equal(t, "2026-09-01", resp["date"])
	assert.Equal(t, "ORD-1756713600000", resp["id"])
	assert.Equal(t, 298.0, resp["total"])
	assert.Equal(t, "pending", resp["status"])
}
