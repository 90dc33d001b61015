package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidStatus is returned for statuses outside the OrderStatus set.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Statuses lists every valid order status.
var Statuses = []OrderStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Statuses {
		if st == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Order is a customer order with its line items.
type Order struct {
	OrderID         string          `json:"orderId"`
	Timestamp       time.Time       `json:"timestamp"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	ContactNumber   string          `json:"contactNumber"`
	Items           []OrderItem     `json:"items"`
	PaymentSchedule string          `json:"paymentSchedule"`
	ProofOfPayment  string          `json:"proofOfPayment,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

// OrderItem is one order line. Product holds the product name.
// For bundle lines Variant carries a free-text description of the recipe.
type OrderItem struct {
	Product   string `json:"product"`
	ProductID string `json:"product_id,omitempty"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Matches reports whether the order matches a case-insensitive search on
// customer name, email or order id, and the given status ("all" or empty
// matches every status).
func (o Order) Matches(search, status string) bool {
	if status != "" && status != "all" && string(o.Status) != status {
		return false
	}
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(o.Name), q) ||
		strings.Contains(strings.ToLower(o.Email), q) ||
		strings.Contains(strings.ToLower(o.OrderID), q)
}
