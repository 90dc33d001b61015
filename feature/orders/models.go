package orders

import (
	"time"

	"merch-manager/core/catalog"

	"github.com/shopspring/decimal"
)

// OrderModel is the orders table row.
type OrderModel struct {
	OrderID         string           `gorm:"column:order_id;primaryKey;size:36"`
	Timestamp       time.Time        `gorm:"column:timestamp;not null;index"`
	Email           string           `gorm:"column:email;size:255;index"`
	Name            string           `gorm:"column:name;size:255;not null"`
	ContactNumber   string           `gorm:"column:contact_number;size:64"`
	PaymentSchedule string           `gorm:"column:payment_schedule;size:128"`
	ProofOfPayment  string           `gorm:"column:proof_of_payment;size:512"`
	Notes           string           `gorm:"column:notes;type:text"`
	Status          string           `gorm:"column:status;size:16;not null;index"`
	TotalAmount     decimal.Decimal  `gorm:"column:total_amount;type:decimal(12,2);not null;default:0"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;references:OrderID"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel is one order line.
type OrderItemModel struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   string `gorm:"column:order_id;size:36;not null;index"`
	Position  int    `gorm:"column:position;not null;default:0"`
	Product   string `gorm:"column:product;size:255;not null"`
	ProductID string `gorm:"column:product_id;size:36"`
	Color     string `gorm:"column:color;size:64"`
	Size      string `gorm:"column:size;size:64"`
	Variant   string `gorm:"column:variant;size:255"`
	Quantity  int    `gorm:"column:quantity;not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// Models returns the tables owned by the orders feature, for migration.
func Models() []any {
	return []any{&OrderModel{}, &OrderItemModel{}}
}

func (m OrderModel) toCatalog() catalog.Order {
	o := catalog.Order{
		OrderID:         m.OrderID,
		Timestamp:       m.Timestamp,
		Email:           m.Email,
		Name:            m.Name,
		ContactNumber:   m.ContactNumber,
		PaymentSchedule: m.PaymentSchedule,
		ProofOfPayment:  m.ProofOfPayment,
		Notes:           m.Notes,
		Status:          catalog.OrderStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		Items:           make([]catalog.OrderItem, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		o.Items = append(o.Items, catalog.OrderItem{
			Product:   it.Product,
			ProductID: it.ProductID,
			Color:     it.Color,
			Size:      it.Size,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
		})
	}
	return o
}

func fromCatalog(o catalog.Order) OrderModel {
	m := OrderModel{
		OrderID:         o.OrderID,
		Timestamp:       o.Timestamp,
		Email:           o.Email,
		Name:            o.Name,
		ContactNumber:   o.ContactNumber,
		PaymentSchedule: o.PaymentSchedule,
		ProofOfPayment:  o.ProofOfPayment,
		Notes:           o.Notes,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
	}
	for i, it := range o.Items {
		m.Items = append(m.Items, OrderItemModel{
			OrderID:   o.OrderID,
			Position:  i,
			Product:   it.Product,
			ProductID: it.ProductID,
			Color:     it.Color,
			Size:      it.Size,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
		})
	}
	return m
}
