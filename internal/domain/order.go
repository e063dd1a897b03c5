package domain

import (
	"database/sql/driver"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// PaymentMethodCOD is the only supported payment method.
const PaymentMethodCOD = "COD"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// orderTransitions is the admin-driven order state machine.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// IsOrderStatus reports whether s is a known order status.
func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrderStatus reports whether an order may move from one
// status to another.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderCustomer is the contact/address snapshot captured at checkout.
type OrderCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// IsZero reports whether no customer field was supplied.
func (c OrderCustomer) IsZero() bool {
	return c == OrderCustomer{}
}

// OrderItem is one line of the cart snapshot stored with an order. Prices
// are decoupled from live Product rows; later catalog edits do not affect
// historical orders.
type OrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

type OrderItems []OrderItem

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c OrderCustomer) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *OrderCustomer) Scan(value interface{}) error {
	return scanJSONColumn(value, c)
}

func (it OrderItems) Value() (driver.Value, error) {
	if it == nil {
		it = OrderItems{}
	}
	return json.Marshal(it)
}

func (it *OrderItems) Scan(value interface{}) error {
	return scanJSONColumn(value, it)
}

func scanJSONColumn(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.Errorf("unsupported json column type %T", value)
	}
}

// Order is a persisted checkout snapshot. Total is always Subtotal plus
// TransportFee at creation time.
type Order struct {
	ID            string        `gorm:"primaryKey;size:64" json:"id"`
	Customer      OrderCustomer `gorm:"type:jsonb" json:"customer"`
	Items         OrderItems    `gorm:"type:jsonb" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TransportFee  float64       `json:"transportFee"`
	Total         float64       `json:"total"`
	Status        string        `gorm:"index;size:32" json:"status"`
	PaymentMethod string        `gorm:"size:16" json:"paymentMethod"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
