package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingDeliveryType is the delivery type every new order starts with.
const PendingDeliveryType = "pending"

// OrderStatus is the order_type column.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCancelled OrderStatus = "cancelled"
	StatusDelivered OrderStatus = "delivered"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusDelivered}

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDelivered},
}

func (s OrderStatus) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the table allows s → to.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedSources returns the statuses an order may be in to move to `to`.
func AllowedSources(to OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, from := range Statuses {
		if from.CanTransitionTo(to) {
			out = append(out, from)
		}
	}
	return out
}

// Order is placed either directly (single product, ProductID set) or through
// the storefront checkout (Items set).
type Order struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	WebUserID          *string         `gorm:"size:64;index" json:"web_user_id"`
	UserID             *uint           `gorm:"index" json:"user_id"`
	ProductID          *uint           `gorm:"index" json:"product_id"`
	Quantity           int             `gorm:"not null;default:0" json:"quantity"`
	FullName           string          `gorm:"size:255;not null" json:"full_name"`
	Phone              string          `gorm:"size:50;not null" json:"phone"`
	Email              string          `gorm:"size:255" json:"email"`
	City               string          `gorm:"size:255" json:"city"`
	Address            string          `gorm:"type:text" json:"address"`
	Notes              string          `gorm:"type:text" json:"notes"`
	SelectedAttributes StringList      `gorm:"type:text" json:"selected_attributes"`
	TotalPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_price"`
	DeliveryTypeName   string          `gorm:"size:100;not null;default:pending;index" json:"delivery_type_name"`
	OrderType          OrderStatus     `gorm:"size:20;not null;default:pending;index" json:"order_type"`
	Items              []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderItem is a checkout line. Price is the unit price at purchase time.
type OrderItem struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	OrderID            uint            `gorm:"not null;index" json:"order_id"`
	ProductID          uint            `gorm:"not null;index" json:"product_id"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	SelectedAttributes StringList      `gorm:"type:text" json:"selected_attributes"`
	CreatedAt          time.Time       `json:"created_at"`
}

// DeliveryType is referenced by name from orders.delivery_type_name.
type DeliveryType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	EnName    string    `gorm:"size:255" json:"en_name"`
	ArName    string    `gorm:"size:255" json:"ar_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
