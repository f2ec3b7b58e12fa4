package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/store"
)

const defaultTerminalID = "MAQ-01"

// PaymentService owns the payment ledger. Manual payments are approved on
// the spot; terminal payments go through the simulated card-reader flow
// (PENDING with a generated external reference, then an explicit confirm).
type PaymentService struct {
	store *store.Store
}

func NewPaymentService(s *store.Store) *PaymentService {
	return &PaymentService{store: s}
}

type PaymentFilter struct {
	OrderID uint
	Offset  int
	Limit   int
}

func (ps *PaymentService) List(filter PaymentFilter) ([]models.Payment, error) {
	if filter.Limit < 1 {
		filter.Limit = 500
	}
	if filter.Limit > 5000 {
		filter.Limit = 5000
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	var out []models.Payment
	err := ps.store.View(func(snap *models.Snapshot) error {
		rows := make([]models.Payment, 0, len(snap.Payments))
		for _, p := range snap.Payments {
			if filter.OrderID > 0 && p.OrderID != filter.OrderID {
				continue
			}
			rows = append(rows, p)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
		start := filter.Offset
		if start > len(rows) {
			start = len(rows)
		}
		end := start + filter.Limit
		if end > len(rows) {
			end = len(rows)
		}
		out = rows[start:end]
		return nil
	})
	return out, err
}

// validatePaymentAmount enforces the ledger's creation rules: positive
// amount, existing order, and no overpayment past the outstanding balance.
func validatePaymentAmount(snap *models.Snapshot, orderID uint, amount decimal.Decimal) (*models.Order, error) {
	order := snap.OrderByID(orderID)
	if order == nil {
		return nil, models.NotFoundf("order %d not found", orderID)
	}
	if !amount.IsPositive() {
		return nil, models.Validationf("amount", "amount must be greater than zero")
	}
	if amount.GreaterThan(order.Payment.Balance) {
		return nil, models.Conflictf("amount %s exceeds outstanding balance %s of order %d",
			amount.StringFixed(2), order.Payment.Balance.StringFixed(2), order.ID)
	}
	return order, nil
}

type ManualPaymentInput struct {
	OrderID uint                 `json:"order_id"`
	Method  models.PaymentMethod `json:"method"`
	Amount  decimal.Decimal      `json:"amount"`
}

// RecordManual creates an APPROVED payment. Settling the full balance
// auto-finalizes the order during the invariant pass.
func (ps *PaymentService) RecordManual(in ManualPaymentInput) (models.Payment, error) {
	var created models.Payment
	err := ps.store.Mutate(func(snap *models.Snapshot) error {
		method := in.Method
		if method == "" {
			method = models.MethodCash
		}
		if !method.Valid() {
			return models.Validationf("method", "unknown payment method %q", in.Method)
		}
		amount := models.Money(in.Amount)
		if _, err := validatePaymentAmount(snap, in.OrderID, amount); err != nil {
			return err
		}
		created = models.Payment{
			ID:        models.NextID(&snap.Counters.Payment),
			OrderID:   in.OrderID,
			Method:    method,
			Status:    models.PaymentApproved,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		snap.Payments = append(snap.Payments, created)
		return nil
	})
	return created, err
}

type TerminalStartInput struct {
	OrderID    uint                 `json:"order_id"`
	Method     models.PaymentMethod `json:"method"`
	Amount     decimal.Decimal      `json:"amount"`
	TerminalID string               `json:"terminal_id"`
}

// StartTerminal creates a PENDING payment with a generated external
// reference. It does not count toward the order's paid total until
// confirmed.
func (ps *PaymentService) StartTerminal(in TerminalStartInput) (models.Payment, error) {
	var created models.Payment
	err := ps.store.Mutate(func(snap *models.Snapshot) error {
		method := in.Method
		if method == "" {
			method = models.MethodDebitCard
		}
		if !method.Valid() {
			return models.Validationf("method", "unknown payment method %q", in.Method)
		}
		amount := models.Money(in.Amount)
		if _, err := validatePaymentAmount(snap, in.OrderID, amount); err != nil {
			return err
		}
		terminal := in.TerminalID
		if terminal == "" {
			terminal = defaultTerminalID
		}
		created = models.Payment{
			ID:          models.NextID(&snap.Counters.Payment),
			OrderID:     in.OrderID,
			Method:      method,
			Status:      models.PaymentPending,
			Amount:      amount,
			ExternalRef: "TX-" + uuid.NewString(),
			TerminalID:  terminal,
			CreatedAt:   time.Now(),
		}
		snap.Payments = append(snap.Payments, created)
		return nil
	})
	return created, err
}

type TerminalConfirmInput struct {
	Approved    bool   `json:"approved"`
	ExternalRef string `json:"external_ref"`
}

// ConfirmTerminal settles a PENDING terminal payment as APPROVED or
// REJECTED. Only pending payments can be confirmed.
func (ps *PaymentService) ConfirmTerminal(paymentID uint, in TerminalConfirmInput) (models.Payment, error) {
	var updated models.Payment
	err := ps.store.Mutate(func(snap *models.Snapshot) error {
		payment := snap.PaymentByID(paymentID)
		if payment == nil {
			return models.NotFoundf("payment %d not found", paymentID)
		}
		if payment.Status != models.PaymentPending {
			return models.Statef("payment %d is %s and cannot be confirmed", payment.ID, payment.Status)
		}
		if in.Approved {
			payment.Status = models.PaymentApproved
		} else {
			payment.Status = models.PaymentRejected
		}
		if in.ExternalRef != "" {
			payment.ExternalRef = in.ExternalRef
		}
		updated = *payment
		return nil
	})
	return updated, err
}
