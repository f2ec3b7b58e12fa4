package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData is the renderer-ready shape for a customer receipt or kitchen
// ticket. The engine only assembles data; an external renderer turns it into
// markup or print output.
type ReceiptData struct {
	OrderID        uint            `json:"order_id"`
	Code           string          `json:"code"`
	Table          string          `json:"table,omitempty"`
	Status         OrderStatus     `json:"status"`
	DeliveryType   DeliveryType    `json:"delivery_type"`
	Notes          string          `json:"notes,omitempty"`
	Kitchen        bool            `json:"kitchen"`
	AutoPrint      bool            `json:"auto_print"`
	Title          string          `json:"title"`
	Lines          []ReceiptLine   `json:"lines"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ReceiptLine struct {
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Notes     string          `json:"notes,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Formatted string          `json:"formatted"`
}
