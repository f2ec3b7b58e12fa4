package models

import "github.com/shopspring/decimal"

// RecalcOrder rebuilds every derived field of one order from its line items
// and the approved payments on record. Totals are always recomputed from
// scratch, never patched incrementally, so repeated calls are idempotent.
// When the outstanding balance hits zero on a positive total, a non-cancelled
// order auto-finalizes.
func (s *Snapshot) RecalcOrder(o *Order) {
	total := decimal.Zero
	count := 0
	for i := range o.Items {
		item := &o.Items[i]
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		addonTotal := decimal.Zero
		for j := range item.Addons {
			ad := &item.Addons[j]
			if ad.Quantity < 1 {
				ad.Quantity = 1
			}
			ad.Subtotal = Money(ad.UnitPrice.Mul(decimal.NewFromInt(int64(ad.Quantity))))
			addonTotal = addonTotal.Add(ad.Subtotal)
		}
		gross := Money(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Add(addonTotal))
		if item.Discount.IsNegative() {
			item.Discount = decimal.Zero
		}
		if item.Discount.GreaterThan(gross) {
			item.Discount = gross
		}
		item.Subtotal = Money(gross.Sub(item.Discount))

		total = total.Add(item.Subtotal)
		count += item.Quantity
	}

	o.Total = Money(total)
	o.ItemCount = count
	o.Complexity = ComplexityLabel(count)

	paid := decimal.Zero
	for i := range s.Payments {
		p := &s.Payments[i]
		if p.OrderID == o.ID && p.Status == PaymentApproved {
			paid = paid.Add(p.Amount)
		}
	}
	paid = Money(paid)
	balance := Money(o.Total.Sub(paid))
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	o.Payment = PaymentSummary{TotalPaid: paid, Balance: balance}

	if o.Status != StatusCancelled && o.Total.IsPositive() && balance.IsZero() {
		o.Status = StatusFinalized
	}
}

// SyncCodes re-derives every code's in-use flag: a code is in use iff some
// non-terminal order currently references it.
func (s *Snapshot) SyncCodes() {
	for i := range s.Codes {
		s.Codes[i].InUse = s.OpenOrderByCode(s.Codes[i].Code) != nil
	}
}

// Recalc re-establishes every snapshot-wide invariant. The store runs this
// after each accepted mutation, before persisting.
func (s *Snapshot) Recalc() {
	for i := range s.Orders {
		s.RecalcOrder(&s.Orders[i])
	}
	s.SyncCodes()
}
