package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "CASH"
	MethodPix        PaymentMethod = "PIX"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodPix, MethodDebitCard, MethodCreditCard:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentPending  PaymentStatus = "PENDING"
	PaymentRejected PaymentStatus = "REJECTED"
)

// Payment records one attempt to settle part of an order. Manual payments
// are born APPROVED; terminal payments are born PENDING with a generated
// external reference and confirmed later. Only APPROVED payments count
// toward an order's paid total.
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ExternalRef string          `gorm:"type:varchar(100)" json:"external_ref,omitempty"`
	TerminalID  string          `gorm:"type:varchar(50)" json:"terminal_id,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}
