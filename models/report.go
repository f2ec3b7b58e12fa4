package models

import "github.com/shopspring/decimal"

// Metrics is the aggregate block shared by the daily closing and the period
// revenue report. All values are re-derived from orders and payments on
// every call; nothing here is a cached counter.
type Metrics struct {
	TotalOrders           int                        `json:"total_orders"`
	ValidOrders           int                        `json:"valid_orders"`
	CancelledOrders       int                        `json:"cancelled_orders"`
	TotalSold             decimal.Decimal            `json:"total_sold"`
	TotalCollected        decimal.Decimal            `json:"total_collected"`
	TotalCancelled        decimal.Decimal            `json:"total_cancelled"`
	AverageTicket         decimal.Decimal            `json:"average_ticket"`
	OrdersByStatus        map[string]int             `json:"orders_by_status"`
	OrdersByDeliveryType  map[string]int             `json:"orders_by_delivery_type"`
	RevenueByDeliveryType map[string]decimal.Decimal `json:"revenue_by_delivery_type"`
	CollectedByMethod     map[string]decimal.Decimal `json:"collected_by_method"`
}

// ClosingReport is the end-of-day summary for a single date (YYYY-MM-DD).
type ClosingReport struct {
	Date string `json:"date"`
	Metrics
}

// PeriodReport aggregates a whole inclusive date range and carries one
// closing-shaped row per calendar day, in ascending order.
type PeriodReport struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Metrics
	Days []ClosingReport `json:"days"`
}
