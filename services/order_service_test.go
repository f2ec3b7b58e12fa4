package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/recati/comanda-app/models"
)

func TestOpenOrderClaimsCode(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "c-001", Table: "7"})
	require.NoError(t, err)
	require.Equal(t, "C-001", order.Code)
	require.Equal(t, models.StatusOpen, order.Status)
	require.Equal(t, models.DeliveryPickup, order.DeliveryType)
	require.Equal(t, "7", order.Table)
	require.Empty(t, order.Items)
	require.True(t, order.Total.IsZero())
	require.True(t, codeInUse(t, st, codeC001))
}

func TestOpenOrderCodeErrors(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	_, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   OpenOrderInput
		kind models.ErrorKind
	}{
		{"empty code", OpenOrderInput{}, models.ErrValidation},
		{"unknown code", OpenOrderInput{Code: "C-999"}, models.ErrNotFound},
		{"code in use", OpenOrderInput{Code: "C-001"}, models.ErrConflict},
		{"inactive code", OpenOrderInput{Code: "C-900"}, models.ErrConflict},
		{"bad delivery type", OpenOrderInput{Code: "C-002", DeliveryType: "TELEPORT"}, models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.Open(tt.in)
			requireKind(t, err, tt.kind)
		})
	}
}

func TestAddItemComputesTotals(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	order, err = orders.AddItem(order.ID, ItemInput{
		ProductID: productEspeto,
		Quantity:  2,
		Discount:  decimal.NewFromFloat(2),
		Addons:    []AddonApplication{{AddonID: addonFarofa, Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	// 2 * 12.50 + 3.00 - 2.00
	require.Equal(t, "26.00", item.Subtotal.StringFixed(2))
	require.Equal(t, "26.00", order.Total.StringFixed(2))
	require.Equal(t, 2, order.ItemCount)
	require.Equal(t, "26.00", order.Payment.Balance.StringFixed(2))
	require.Equal(t, 8, stockOf(t, st, productEspeto))
}

func TestAddItemQuantityClampsToOne(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 0})
	require.NoError(t, err)
	require.Equal(t, 1, order.Items[0].Quantity)
	require.Equal(t, 9, stockOf(t, st, productEspeto))
}

func TestAddItemDiscountClampsToGross(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	order, err = orders.AddItem(order.ID, ItemInput{
		ProductID: productAgua,
		Quantity:  1,
		Discount:  decimal.NewFromFloat(100),
	})
	require.NoError(t, err)
	require.Equal(t, "4.00", order.Items[0].Discount.StringFixed(2))
	require.Equal(t, "0.00", order.Items[0].Subtotal.StringFixed(2))
}

func TestAddItemInsufficientStock(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	_, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 11})
	requireKind(t, err, models.ErrConflict)

	// Rejected mutation leaves the store untouched.
	require.Equal(t, 10, stockOf(t, st, productEspeto))
	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestAddItemUntrackedProductSkipsStock(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	_, err = orders.AddItem(order.ID, ItemInput{ProductID: productAgua, Quantity: 500})
	require.NoError(t, err)
	require.Equal(t, 0, stockOf(t, st, productAgua))
}

func TestAddItemAddonEligibility(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	// Costela only allows Farofa.
	_, err = orders.AddItem(order.ID, ItemInput{
		ProductID: productCostela,
		Quantity:  1,
		Addons:    []AddonApplication{{AddonID: addonVinagrete, Quantity: 1}},
	})
	requireKind(t, err, models.ErrValidation)

	// Espeto has no restriction list, so everything is allowed.
	_, err = orders.AddItem(order.ID, ItemInput{
		ProductID: productEspeto,
		Quantity:  1,
		Addons:    []AddonApplication{{AddonID: addonVinagrete, Quantity: 2}},
	})
	require.NoError(t, err)
}

func TestUpdateItemRestoresStockBeforeTaking(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 8})
	require.NoError(t, err)
	require.Equal(t, 2, stockOf(t, st, productEspeto))

	itemID := order.Items[0].ID
	order, err = orders.UpdateItem(order.ID, itemID, ItemInput{ProductID: productEspeto, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, itemID, order.Items[0].ID)
	require.Equal(t, 10, order.Items[0].Quantity)
	require.Equal(t, 0, stockOf(t, st, productEspeto))

	_, err = orders.UpdateItem(order.ID, itemID, ItemInput{ProductID: productEspeto, Quantity: 11})
	requireKind(t, err, models.ErrConflict)
	require.Equal(t, 0, stockOf(t, st, productEspeto))
}

func TestRemoveItemRestocks(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 3})
	require.NoError(t, err)

	order, err = orders.RemoveItem(order.ID, order.Items[0].ID)
	require.NoError(t, err)
	require.Empty(t, order.Items)
	require.True(t, order.Total.IsZero())
	require.Equal(t, 10, stockOf(t, st, productEspeto))
}

func TestItemsLockedOutsideOpen(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)
	payments := NewPaymentService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 1})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	_, err = payments.RecordManual(ManualPaymentInput{OrderID: order.ID, Amount: order.Total})
	require.NoError(t, err)

	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusFinalized, got.Status)

	_, err = orders.AddItem(order.ID, ItemInput{ProductID: productAgua, Quantity: 1})
	requireKind(t, err, models.ErrState)
	_, err = orders.UpdateItem(order.ID, itemID, ItemInput{ProductID: productEspeto, Quantity: 2})
	requireKind(t, err, models.ErrState)
	_, err = orders.RemoveItem(order.ID, itemID)
	requireKind(t, err, models.ErrState)
}

func TestForceRemoveItemWorksOnClosedOrders(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)
	payments := NewPaymentService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 2})
	require.NoError(t, err)
	_, err = payments.RecordManual(ManualPaymentInput{OrderID: order.ID, Amount: order.Total})
	require.NoError(t, err)

	got, err := orders.ForceRemoveItem(order.ID, order.Items[0].ID, true)
	require.NoError(t, err)
	require.Empty(t, got.Items)
	require.Equal(t, 10, stockOf(t, st, productEspeto))
}

func TestMoveItemBetweenOpenOrders(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	source, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	target, err := orders.Open(OpenOrderInput{Code: "C-002"})
	require.NoError(t, err)

	source, err = orders.AddItem(source.ID, ItemInput{
		ProductID: productEspeto,
		Quantity:  2,
		Addons:    []AddonApplication{{AddonID: addonFarofa, Quantity: 1}},
	})
	require.NoError(t, err)
	itemID := source.Items[0].ID

	source, err = orders.MoveItem(source.ID, itemID, target.ID)
	require.NoError(t, err)
	require.Empty(t, source.Items)
	// The returned source must reflect the recomputed state, not the
	// pre-move totals.
	require.True(t, source.Total.IsZero())
	require.Zero(t, source.ItemCount)
	require.Equal(t, "no items", source.Complexity)

	got, err := orders.Get(target.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.NotEqual(t, itemID, got.Items[0].ID, "moved item gets a fresh id")
	require.Equal(t, got.ID, got.Items[0].OrderID)
	require.Equal(t, "28.00", got.Total.StringFixed(2))
	// Stock already belongs to the item; moving must not touch it.
	require.Equal(t, 8, stockOf(t, st, productEspeto))
}

func TestMoveItemRequiresBothOpen(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)
	payments := NewPaymentService(st)

	source, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	target, err := orders.Open(OpenOrderInput{Code: "C-002"})
	require.NoError(t, err)
	source, err = orders.AddItem(source.ID, ItemInput{ProductID: productEspeto, Quantity: 1})
	require.NoError(t, err)

	target, err = orders.AddItem(target.ID, ItemInput{ProductID: productAgua, Quantity: 1})
	require.NoError(t, err)
	_, err = payments.RecordManual(ManualPaymentInput{OrderID: target.ID, Amount: target.Total})
	require.NoError(t, err)

	_, err = orders.MoveItem(source.ID, source.Items[0].ID, target.ID)
	requireKind(t, err, models.ErrState)
}

func TestSetStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		kind models.ErrorKind // "" means the transition must succeed
	}{
		{"open to finalized", models.StatusOpen, models.StatusFinalized, ""},
		{"open to cancelled", models.StatusOpen, models.StatusCancelled, ""},
		{"same status is a no-op", models.StatusOpen, models.StatusOpen, ""},
		{"finalized cannot reopen", models.StatusFinalized, models.StatusOpen, models.ErrState},
		{"finalized cannot cancel", models.StatusFinalized, models.StatusCancelled, models.ErrState},
		{"cancelled cannot finalize", models.StatusCancelled, models.StatusFinalized, models.ErrState},
		{"unknown status", models.StatusOpen, "PAUSED", models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			orders := NewOrderService(st)

			order, err := orders.Open(OpenOrderInput{Code: "C-001"})
			require.NoError(t, err)
			if tt.from != models.StatusOpen {
				_, err = orders.SetStatus(order.ID, tt.from, false)
				require.NoError(t, err)
			}

			got, err := orders.SetStatus(order.ID, tt.to, false)
			if tt.kind != "" {
				requireKind(t, err, tt.kind)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.to, got.Status)
		})
	}
}

func TestCancelRestocksAndReleasesCode(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 4})
	require.NoError(t, err)
	require.Equal(t, 6, stockOf(t, st, productEspeto))
	require.True(t, codeInUse(t, st, codeC001))

	got, err := orders.SetStatus(order.ID, models.StatusCancelled, true)
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, got.Status)
	require.Equal(t, 10, stockOf(t, st, productEspeto))
	require.False(t, codeInUse(t, st, codeC001))

	// Repeating the cancel must not restock twice.
	_, err = orders.SetStatus(order.ID, models.StatusCancelled, true)
	require.NoError(t, err)
	require.Equal(t, 10, stockOf(t, st, productEspeto))
}

func TestCancelWithoutRestock(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	_, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 4})
	require.NoError(t, err)

	_, err = orders.SetStatus(order.ID, models.StatusCancelled, false)
	require.NoError(t, err)
	require.Equal(t, 6, stockOf(t, st, productEspeto))
}

func TestResetOrder(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	_, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 3})
	require.NoError(t, err)

	result, err := orders.Reset(order.ID)
	require.NoError(t, err)
	require.Equal(t, "C-001", result.Code)
	require.Equal(t, models.StatusOpen, result.PreviousStatus)
	require.True(t, result.Released)
	require.Equal(t, 3, result.RestockedTotal)
	require.Equal(t, 10, stockOf(t, st, productEspeto))
	require.False(t, codeInUse(t, st, codeC001))

	// Second reset finds an already emptied, cancelled ticket.
	again, err := orders.Reset(order.ID)
	require.NoError(t, err)
	require.Equal(t, 0, again.RestockedTotal)
	require.Equal(t, models.StatusCancelled, again.PreviousStatus)
	require.False(t, again.Released, "code was already free")
	require.Equal(t, 10, stockOf(t, st, productEspeto))
}

func TestResetActiveOrders(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)
	payments := NewPaymentService(st)

	first, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	_, err = orders.AddItem(first.ID, ItemInput{ProductID: productEspeto, Quantity: 2})
	require.NoError(t, err)

	second, err := orders.Open(OpenOrderInput{Code: "C-002"})
	require.NoError(t, err)
	_, err = orders.AddItem(second.ID, ItemInput{ProductID: productCostela, Quantity: 1})
	require.NoError(t, err)

	// A finalized ticket must survive the bulk reset.
	third, err := orders.Open(OpenOrderInput{Code: "C-003"})
	require.NoError(t, err)
	third, err = orders.AddItem(third.ID, ItemInput{ProductID: productAgua, Quantity: 1})
	require.NoError(t, err)
	_, err = payments.RecordManual(ManualPaymentInput{OrderID: third.ID, Amount: third.Total})
	require.NoError(t, err)

	result, err := orders.ResetActive()
	require.NoError(t, err)
	require.Equal(t, 2, result.OrdersReset)
	require.Equal(t, 2, result.ItemsAffected)
	require.Equal(t, 3, result.RestockedTotal)
	require.Equal(t, 10, stockOf(t, st, productEspeto))
	require.Equal(t, 5, stockOf(t, st, productCostela))

	got, err := orders.Get(third.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusFinalized, got.Status)
}

func TestDeleteOrderCascades(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)
	payments := NewPaymentService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 2})
	require.NoError(t, err)
	_, err = payments.RecordManual(ManualPaymentInput{OrderID: order.ID, Amount: decimal.NewFromFloat(10)})
	require.NoError(t, err)

	result, err := orders.Delete(order.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.ItemsRemoved)
	require.Equal(t, 1, result.PaymentsRemoved)
	require.Equal(t, 2, result.RestockedTotal)
	require.Equal(t, 10, stockOf(t, st, productEspeto))
	require.False(t, codeInUse(t, st, codeC001))

	_, err = orders.Get(order.ID)
	requireKind(t, err, models.ErrNotFound)

	rows, err := payments.List(PaymentFilter{OrderID: order.ID})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestListOrdersFilterAndSort(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	a, err := orders.Open(OpenOrderInput{Code: "C-001", Table: "1"})
	require.NoError(t, err)
	_, err = orders.AddItem(a.ID, ItemInput{ProductID: productEspeto, Quantity: 1})
	require.NoError(t, err)

	b, err := orders.Open(OpenOrderInput{Code: "C-002", DeliveryType: models.DeliveryDelivery})
	require.NoError(t, err)
	_, err = orders.AddItem(b.ID, ItemInput{ProductID: productCostela, Quantity: 2})
	require.NoError(t, err)

	_, err = orders.SetStatus(a.ID, models.StatusCancelled, true)
	require.NoError(t, err)

	open, err := orders.List(OrderFilter{Status: "open"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, b.ID, open[0].ID)

	delivery, err := orders.List(OrderFilter{DeliveryType: "DELIVERY"})
	require.NoError(t, err)
	require.Len(t, delivery, 1)

	min := decimal.NewFromFloat(20)
	byTotal, err := orders.List(OrderFilter{TotalMin: &min, OrderBy: "total", OrderDesc: true})
	require.NoError(t, err)
	require.Len(t, byTotal, 1)
	require.Equal(t, "40.00", byTotal[0].Total.StringFixed(2))
}

func TestOrderHistoryNewestFirst(t *testing.T) {
	st := newTestStore(t)
	orders := NewOrderService(st)

	a, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	b, err := orders.Open(OpenOrderInput{Code: "C-002"})
	require.NoError(t, err)
	_, err = orders.SetStatus(a.ID, models.StatusCancelled, true)
	require.NoError(t, err)
	_, err = orders.SetStatus(b.ID, models.StatusFinalized, false)
	require.NoError(t, err)

	// Still-open order must not show up.
	_, err = orders.Open(OpenOrderInput{Code: "C-003"})
	require.NoError(t, err)

	rows, err := orders.History(HistoryFilter{OnlyClosed: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.GreaterOrEqual(t, rows[0].ID, rows[1].ID)
}
