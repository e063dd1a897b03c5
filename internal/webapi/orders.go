package webapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/greenhaven-store/greenhaven/internal/cart"
	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerOrderRoutes() {
	webserver.PubPOST("/orders", createOrder)
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
}

type orderPayload struct {
	Customer domain.OrderCustomer `json:"customer"`
	Items    []domain.OrderItem   `json:"items"`
	// Client-supplied totals are display-only and ignored; pricing is
	// recomputed server-side.
	Subtotal     float64 `json:"subtotal"`
	TransportFee float64 `json:"transportFee"`
	Total        float64 `json:"total"`
}

// validateOrderPayload checks that a checkout request carries a customer
// snapshot and at least one line item.
func validateOrderPayload(payload orderPayload) error {
	if payload.Customer.IsZero() {
		return errors.New("customer is required")
	}
	if len(payload.Items) == 0 {
		return errors.New("items must not be empty")
	}
	return nil
}

// newOrderID derives the order identity from the creation time.
func newOrderID(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}

// orderResponse shapes an order for the API, exposing the creation date as
// YYYY-MM-DD.
func orderResponse(o domain.Order) map[string]interface{} {
	return map[string]interface{}{
		"id":            o.ID,
		"customer":      o.Customer,
		"items":         o.Items,
		"subtotal":      o.Subtotal,
		"transportFee":  o.TransportFee,
		"total":         o.Total,
		"status":        o.Status,
		"paymentMethod": o.PaymentMethod,
		"date":          o.CreatedAt.Format("2006-01-02"),
	}
}

// createOrder persists a checkout snapshot. Totals are recomputed from the
// submitted items; stock is deliberately not decremented.
func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	if err := validateOrderPayload(payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	var subtotal float64
	for _, item := range payload.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	totals := cart.TotalsForSubtotal(subtotal)

	now := time.Now()
	order := domain.Order{
		ID:            newOrderID(now),
		Customer:      payload.Customer,
		Items:         payload.Items,
		Subtotal:      totals.Subtotal,
		TransportFee:  totals.TransportFee,
		Total:         totals.Total,
		Status:        domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodCOD,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetDB(c).Create(&order).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", nil)
	}
	return ok(c, orderResponse(order))
}

// listOrders returns orders newest first, optionally bounded by from/to
// creation dates.
func listOrders(c echo.Context) error {
	db := GetDB(c).Model(&domain.Order{})

	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		t, err := dateparse.ParseAny(from)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse from date", nil)
		}
		db = db.Where("created_at >= ?", t)
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		t, err := dateparse.ParseAny(to)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse to date", nil)
		}
		db = db.Where("created_at <= ?", t)
	}

	var orders []domain.Order
	if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	out := make([]map[string]interface{}, len(orders))
	for i, o := range orders {
		out[i] = orderResponse(o)
	}
	return ok(c, out)
}

func getOrder(c echo.Context) error {
	id := c.Param("id")
	var order domain.Order
	if err := GetDB(c).Where("id = ?", id).First(&order).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}
	return ok(c, orderResponse(order))
}

func deleteOrder(c echo.Context) error {
	id := c.Param("id")
	res := GetDB(c).Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", nil)
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	audit(c, "order:delete", fmt.Sprintf("deleted order %s", id))
	return ok(c, map[string]interface{}{"id": id})
}

type orderStatusPayload struct {
	Status string `json:"status"`
}

// updateOrderStatus moves an order along the admin-driven state machine.
func updateOrderStatus(c echo.Context) error {
	id := c.Param("id")
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	if !domain.IsOrderStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
	}

	var order domain.Order
	if err := GetDB(c).Where("id = ?", id).First(&order).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}

	if !domain.CanTransitionOrderStatus(order.Status, payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_TRANSITION",
			fmt.Sprintf("Order cannot move from %s to %s", order.Status, payload.Status), nil)
	}

	if err := GetDB(c).Model(&domain.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": payload.Status, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", nil)
	}
	order.Status = payload.Status

	audit(c, "order:status", fmt.Sprintf("order %s moved to %s", id, payload.Status))
	return ok(c, orderResponse(order))
}
