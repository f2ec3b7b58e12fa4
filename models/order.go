package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOpen      OrderStatus = "OPEN"
	StatusFinalized OrderStatus = "FINALIZED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// transitions enumerates every allowed (state, next) pair. Both terminal
// states accept no outgoing transition.
var transitions = map[OrderStatus][]OrderStatus{
	StatusOpen: {StatusFinalized, StatusCancelled},
}

func (s OrderStatus) Valid() bool {
	return s == StatusOpen || s == StatusFinalized || s == StatusCancelled
}

func (s OrderStatus) Terminal() bool {
	return s == StatusFinalized || s == StatusCancelled
}

// Editable reports whether line items may be mutated in this status.
func (s OrderStatus) Editable() bool {
	return s == StatusOpen
}

// CanTransitionTo consults the transition table. Re-setting the current
// status is permitted as a no-op so callers can force an invariant pass.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "PICKUP"
	DeliveryDelivery DeliveryType = "DELIVERY"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryPickup || d == DeliveryDelivery
}

// ComplexityLabel is a step function of the total item quantity, used by the
// till front-end to size kitchen effort at a glance.
func ComplexityLabel(itemCount int) string {
	switch {
	case itemCount <= 0:
		return "no items"
	case itemCount <= 2:
		return "tiny"
	case itemCount <= 5:
		return "small"
	case itemCount <= 8:
		return "medium"
	default:
		return "large"
	}
}

type PaymentSummary struct {
	TotalPaid decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_paid"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`
}

type Order struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"type:varchar(50);not null;index" json:"code"`
	Table        string         `gorm:"type:varchar(50)" json:"table,omitempty"`
	Status       OrderStatus    `gorm:"type:varchar(20);not null" json:"status"`
	DeliveryType DeliveryType   `gorm:"type:varchar(20);not null" json:"delivery_type"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	Items        []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	// Derived fields, recomputed after every mutation and never patched
	// incrementally.
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ItemCount  int             `gorm:"not null" json:"item_count"`
	Complexity string          `gorm:"type:varchar(20);not null" json:"complexity"`
	Payment    PaymentSummary  `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

func (o *Order) ItemIndex(itemID uint) int {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// OrderSummary is the listing row shape: everything except line items.
type OrderSummary struct {
	ID           uint            `json:"id"`
	Code         string          `json:"code"`
	Table        string          `json:"table,omitempty"`
	Status       OrderStatus     `json:"status"`
	DeliveryType DeliveryType    `json:"delivery_type"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
	Complexity   string          `json:"complexity"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		Code:         o.Code,
		Table:        o.Table,
		Status:       o.Status,
		DeliveryType: o.DeliveryType,
		Total:        o.Total,
		ItemCount:    o.ItemCount,
		Complexity:   o.Complexity,
		CreatedAt:    o.CreatedAt,
	}
}
