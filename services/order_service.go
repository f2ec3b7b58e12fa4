package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/store"
)

// OrderService is the order lifecycle engine: it claims and releases codes,
// mutates line items while the ticket is OPEN and drives the status state
// machine. Every operation validates before touching stock, codes or totals,
// so a failure leaves the store unchanged.
type OrderService struct {
	store *store.Store
}

func NewOrderService(s *store.Store) *OrderService {
	return &OrderService{store: s}
}

type OpenOrderInput struct {
	Code         string              `json:"code"`
	Table        string              `json:"table"`
	DeliveryType models.DeliveryType `json:"delivery_type"`
	Notes        string              `json:"notes"`
}

type AddonApplication struct {
	AddonID  uint `json:"addon_id"`
	Quantity int  `json:"quantity"`
}

type ItemInput struct {
	ProductID uint               `json:"product_id"`
	Quantity  int                `json:"quantity"`
	Discount  decimal.Decimal    `json:"discount"`
	Notes     string             `json:"notes"`
	Addons    []AddonApplication `json:"addons"`
}

// takeStock decrements a stock-tracked product for a line item, failing with
// Conflict when not enough stock remains.
func takeStock(snap *models.Snapshot, item *models.OrderItem) error {
	product := snap.ProductByID(item.ProductID)
	if product == nil || !product.TracksStock {
		return nil
	}
	if product.Stock < item.Quantity {
		return models.Conflictf("insufficient stock for %q: have %d, need %d", product.Name, product.Stock, item.Quantity)
	}
	product.Stock -= item.Quantity
	return nil
}

// restoreStock puts a line item's quantity back. Returns the restocked
// quantity (0 for untracked or vanished products).
func restoreStock(snap *models.Snapshot, item *models.OrderItem) int {
	product := snap.ProductByID(item.ProductID)
	if product == nil || !product.TracksStock {
		return 0
	}
	product.Stock += item.Quantity
	return item.Quantity
}

// buildItem assembles a line item with immutable product and addon
// snapshots. Stock is not touched here; callers decrement afterwards so
// validation always precedes mutation.
func buildItem(snap *models.Snapshot, orderID uint, in ItemInput) (models.OrderItem, error) {
	product := snap.ProductByID(in.ProductID)
	if product == nil {
		return models.OrderItem{}, models.NotFoundf("product %d not found", in.ProductID)
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	discount := models.Money(in.Discount)
	if discount.IsNegative() {
		return models.OrderItem{}, models.Validationf("discount", "discount cannot be negative")
	}

	item := models.OrderItem{
		ID:          models.NextID(&snap.Counters.Item),
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    qty,
		Discount:    discount,
		Notes:       strings.TrimSpace(in.Notes),
	}

	addonTotal := decimal.Zero
	for _, app := range in.Addons {
		addon := snap.AddonByID(app.AddonID)
		if addon == nil {
			return models.OrderItem{}, models.NotFoundf("addon %d not found", app.AddonID)
		}
		if !product.AddonAllowed(addon.ID) {
			return models.OrderItem{}, models.Validationf("addons", "addon %q is not eligible for product %q", addon.Name, product.Name)
		}
		aq := app.Quantity
		if aq < 1 {
			aq = 1
		}
		subtotal := models.Money(addon.Price.Mul(decimal.NewFromInt(int64(aq))))
		item.Addons = append(item.Addons, models.OrderItemAddon{
			ID:        models.NextID(&snap.Counters.ItemAddon),
			ItemID:    item.ID,
			AddonID:   addon.ID,
			Name:      addon.Name,
			Quantity:  aq,
			UnitPrice: addon.Price,
			Subtotal:  subtotal,
		})
		addonTotal = addonTotal.Add(subtotal)
	}

	gross := models.Money(product.Price.Mul(decimal.NewFromInt(int64(qty))).Add(addonTotal))
	if item.Discount.GreaterThan(gross) {
		item.Discount = gross
	}
	item.Subtotal = models.Money(gross.Sub(item.Discount))
	return item, nil
}

// Open claims a free code and creates an OPEN order with no items.
func (os *OrderService) Open(in OpenOrderInput) (models.Order, error) {
	var created models.Order
	err := os.store.Mutate(func(snap *models.Snapshot) error {
		key := strings.ToUpper(strings.TrimSpace(in.Code))
		if key == "" {
			return models.Validationf("code", "code is required")
		}
		code := snap.CodeByCode(key)
		if code == nil {
			return models.NotFoundf("code %q not found", key)
		}
		if !code.Active {
			return models.Conflictf("code %q is not available", key)
		}
		if code.InUse || snap.OpenOrderByCode(key) != nil {
			return models.Conflictf("code %q is already in use", key)
		}
		delivery := in.DeliveryType
		if delivery == "" {
			delivery = models.DeliveryPickup
		}
		if !delivery.Valid() {
			return models.Validationf("delivery_type", "unknown delivery type %q", in.DeliveryType)
		}

		order := models.Order{
			ID:           models.NextID(&snap.Counters.Order),
			Code:         key,
			Table:        strings.TrimSpace(in.Table),
			Status:       models.StatusOpen,
			DeliveryType: delivery,
			Notes:        strings.TrimSpace(in.Notes),
			CreatedAt:    time.Now(),
			Total:        decimal.Zero,
			Complexity:   models.ComplexityLabel(0),
		}
		snap.Orders = append(snap.Orders, order)
		code.InUse = true
		created = order.Clone()
		return nil
	})
	return created, err
}

type OrderFilter struct {
	Status       string
	DeliveryType string
	Code         string
	Table        string
	StartDate    string
	EndDate      string
	TotalMin     *decimal.Decimal
	TotalMax     *decimal.Decimal
	OrderBy      string
	OrderDesc    bool
	Offset       int
	Limit        int
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (os *OrderService) List(filter OrderFilter) ([]models.OrderSummary, error) {
	if filter.Limit < 1 {
		filter.Limit = 500
	}
	if filter.Limit > 5000 {
		filter.Limit = 5000
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var out []models.OrderSummary
	err := os.store.View(func(snap *models.Snapshot) error {
		status := strings.ToUpper(strings.TrimSpace(filter.Status))
		delivery := strings.ToUpper(strings.TrimSpace(filter.DeliveryType))
		codeNeedle := strings.ToLower(strings.TrimSpace(filter.Code))
		tableNeedle := strings.ToLower(strings.TrimSpace(filter.Table))

		rows := make([]models.OrderSummary, 0, len(snap.Orders))
		for i := range snap.Orders {
			o := &snap.Orders[i]
			if status != "" && string(o.Status) != status {
				continue
			}
			if delivery != "" && string(o.DeliveryType) != delivery {
				continue
			}
			if codeNeedle != "" && !strings.Contains(strings.ToLower(o.Code), codeNeedle) {
				continue
			}
			if tableNeedle != "" && !strings.Contains(strings.ToLower(o.Table), tableNeedle) {
				continue
			}
			day := dateKey(o.CreatedAt)
			if filter.StartDate != "" && day < filter.StartDate {
				continue
			}
			if filter.EndDate != "" && day > filter.EndDate {
				continue
			}
			if filter.TotalMin != nil && o.Total.LessThan(*filter.TotalMin) {
				continue
			}
			if filter.TotalMax != nil && o.Total.GreaterThan(*filter.TotalMax) {
				continue
			}
			rows = append(rows, o.Summary())
		}

		less := orderLess(filter.OrderBy)
		sort.SliceStable(rows, func(i, j int) bool {
			if filter.OrderDesc {
				return less(&rows[j], &rows[i])
			}
			return less(&rows[i], &rows[j])
		})

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

func orderLess(by string) func(a, b *models.OrderSummary) bool {
	switch strings.ToLower(by) {
	case "code":
		return func(a, b *models.OrderSummary) bool { return a.Code < b.Code }
	case "table":
		return func(a, b *models.OrderSummary) bool { return a.Table < b.Table }
	case "status":
		return func(a, b *models.OrderSummary) bool { return a.Status < b.Status }
	case "delivery_type":
		return func(a, b *models.OrderSummary) bool { return a.DeliveryType < b.DeliveryType }
	case "total":
		return func(a, b *models.OrderSummary) bool { return a.Total.LessThan(b.Total) }
	case "created_at":
		return func(a, b *models.OrderSummary) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b *models.OrderSummary) bool { return a.ID < b.ID }
	}
}

type HistoryFilter struct {
	Status     string
	OnlyClosed bool
	StartDate  string
	EndDate    string
	Limit      int
}

// History lists closed tickets, newest first.
func (os *OrderService) History(filter HistoryFilter) ([]models.OrderSummary, error) {
	if filter.Limit < 1 {
		filter.Limit = 200
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}
	var out []models.OrderSummary
	err := os.store.View(func(snap *models.Snapshot) error {
		status := strings.ToUpper(strings.TrimSpace(filter.Status))
		for i := range snap.Orders {
			o := &snap.Orders[i]
			if filter.OnlyClosed && !o.Status.Terminal() {
				continue
			}
			if status != "" && string(o.Status) != status {
				continue
			}
			day := dateKey(o.CreatedAt)
			if filter.StartDate != "" && day < filter.StartDate {
				continue
			}
			if filter.EndDate != "" && day > filter.EndDate {
				continue
			}
			out = append(out, o.Summary())
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		if len(out) > filter.Limit {
			out = out[:filter.Limit]
		}
		return nil
	})
	return out, err
}

func (os *OrderService) Get(id uint) (models.Order, error) {
	var out models.Order
	err := os.store.View(func(snap *models.Snapshot) error {
		order := snap.OrderByID(id)
		if order == nil {
			return models.NotFoundf("order %d not found", id)
		}
		out = order.Clone()
		return nil
	})
	return out, err
}

// AddItem appends a line item to an OPEN order, decrementing stock.
func (os *OrderService) AddItem(orderID uint, in ItemInput) (models.Order, error) {
	return os.mutateOrder(orderID, func(snap *models.Snapshot, order *models.Order) error {
		if !order.Status.Editable() {
			return models.Statef("order %d is %s; items can only change while OPEN", order.ID, order.Status)
		}
		item, err := buildItem(snap, order.ID, in)
		if err != nil {
			return err
		}
		if err := takeStock(snap, &item); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
		return nil
	})
}

// UpdateItem replaces a line item in place, keeping its id. The old item's
// stock is restored before the replacement's stock is taken, so changing a
// quantity within available stock always succeeds.
func (os *OrderService) UpdateItem(orderID, itemID uint, in ItemInput) (models.Order, error) {
	return os.mutateOrder(orderID, func(snap *models.Snapshot, order *models.Order) error {
		if !order.Status.Editable() {
			return models.Statef("order %d is %s; items can only change while OPEN", order.ID, order.Status)
		}
		idx := order.ItemIndex(itemID)
		if idx < 0 {
			return models.NotFoundf("item %d not found on order %d", itemID, orderID)
		}
		restoreStock(snap, &order.Items[idx])
		next, err := buildItem(snap, order.ID, in)
		if err != nil {
			return err
		}
		if err := takeStock(snap, &next); err != nil {
			return err
		}
		next.ID = order.Items[idx].ID
		for i := range next.Addons {
			next.Addons[i].ItemID = next.ID
		}
		order.Items[idx] = next
		return nil
	})
}

func (os *OrderService) RemoveItem(orderID, itemID uint) (models.Order, error) {
	return os.mutateOrder(orderID, func(snap *models.Snapshot, order *models.Order) error {
		if !order.Status.Editable() {
			return models.Statef("order %d is %s; items can only change while OPEN", order.ID, order.Status)
		}
		idx := order.ItemIndex(itemID)
		if idx < 0 {
			return models.NotFoundf("item %d not found on order %d", itemID, orderID)
		}
		restoreStock(snap, &order.Items[idx])
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
		return nil
	})
}

// ForceRemoveItem is the administrative override: it works in any status and
// restocks only when asked.
func (os *OrderService) ForceRemoveItem(orderID, itemID uint, restock bool) (models.Order, error) {
	return os.mutateOrder(orderID, func(snap *models.Snapshot, order *models.Order) error {
		idx := order.ItemIndex(itemID)
		if idx < 0 {
			return models.NotFoundf("item %d not found on order %d", itemID, orderID)
		}
		if restock {
			restoreStock(snap, &order.Items[idx])
		}
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
		return nil
	})
}

// MoveItem reassigns a line item to another OPEN order. The moved item and
// its addon applications receive fresh ids so the destination never collides.
func (os *OrderService) MoveItem(fromOrderID, itemID, toOrderID uint) (models.Order, error) {
	err := os.store.Mutate(func(snap *models.Snapshot) error {
		from := snap.OrderByID(fromOrderID)
		if from == nil {
			return models.NotFoundf("order %d not found", fromOrderID)
		}
		if !from.Status.Editable() {
			return models.Statef("order %d is %s; items can only move while OPEN", from.ID, from.Status)
		}
		to := snap.OrderByID(toOrderID)
		if to == nil {
			return models.NotFoundf("destination order %d not found", toOrderID)
		}
		if !to.Status.Editable() {
			return models.Statef("destination order %d is %s; items can only move while OPEN", to.ID, to.Status)
		}
		idx := from.ItemIndex(itemID)
		if idx < 0 {
			return models.NotFoundf("item %d not found on order %d", itemID, fromOrderID)
		}

		moved := from.Items[idx].Clone()
		moved.ID = models.NextID(&snap.Counters.Item)
		moved.OrderID = to.ID
		for i := range moved.Addons {
			moved.Addons[i].ID = models.NextID(&snap.Counters.ItemAddon)
			moved.Addons[i].ItemID = moved.ID
		}
		from.Items = append(from.Items[:idx], from.Items[idx+1:]...)
		to.Items = append(to.Items, moved)
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	// Re-read the committed state so the source order carries its
	// recomputed totals.
	var source models.Order
	viewErr := os.store.View(func(snap *models.Snapshot) error {
		if order := snap.OrderByID(fromOrderID); order != nil {
			source = order.Clone()
		}
		return nil
	})
	return source, viewErr
}

// SetStatus drives the state machine through the transition table. A
// transition to CANCELLED restocks all items when requested and frees the
// code; any other accepted transition just triggers an invariant pass.
func (os *OrderService) SetStatus(orderID uint, next models.OrderStatus, restockOnCancel bool) (models.Order, error) {
	return os.mutateOrder(orderID, func(snap *models.Snapshot, order *models.Order) error {
		if !next.Valid() {
			return models.Validationf("status", "unknown status %q", next)
		}
		if !order.Status.CanTransitionTo(next) {
			return models.Statef("order %d cannot go from %s to %s", order.ID, order.Status, next)
		}
		if next == models.StatusCancelled && order.Status != models.StatusCancelled {
			if restockOnCancel {
				for i := range order.Items {
					restoreStock(snap, &order.Items[i])
				}
			}
		}
		order.Status = next
		return nil
	})
}

type ResetResult struct {
	OrderID        uint               `json:"order_id"`
	Code           string             `json:"code"`
	PreviousStatus models.OrderStatus `json:"previous_status"`
	Released       bool               `json:"released"`
	RestockedTotal int                `json:"restocked_total"`
}

// Reset empties an order (always restocking), cancels it and frees its code.
// Running it twice is a no-op the second time.
func (os *OrderService) Reset(orderID uint) (ResetResult, error) {
	var out ResetResult
	err := os.store.Mutate(func(snap *models.Snapshot) error {
		order := snap.OrderByID(orderID)
		if order == nil {
			return models.NotFoundf("order %d not found", orderID)
		}
		// A terminal order already gave its code back, so a repeat
		// reset releases nothing.
		out = ResetResult{OrderID: order.ID, Code: order.Code, PreviousStatus: order.Status, Released: !order.Status.Terminal()}
		for i := range order.Items {
			out.RestockedTotal += restoreStock(snap, &order.Items[i])
		}
		order.Items = nil
		order.Status = models.StatusCancelled
		return nil
	})
	return out, err
}

type BulkResetResult struct {
	OrdersReset    int `json:"orders_reset"`
	ItemsAffected  int `json:"items_affected"`
	CodesReleased  int `json:"codes_released"`
	RestockedTotal int `json:"restocked_total"`
}

// ResetActive resets every OPEN order in one pass.
func (os *OrderService) ResetActive() (BulkResetResult, error) {
	var out BulkResetResult
	err := os.store.Mutate(func(snap *models.Snapshot) error {
		for i := range snap.Orders {
			order := &snap.Orders[i]
			if order.Status.Terminal() {
				continue
			}
			out.OrdersReset++
			if code := snap.CodeByCode(order.Code); code != nil && code.InUse {
				out.CodesReleased++
			}
			for j := range order.Items {
				out.ItemsAffected++
				out.RestockedTotal += restoreStock(snap, &order.Items[j])
			}
			order.Items = nil
			order.Status = models.StatusCancelled
		}
		return nil
	})
	return out, err
}

type DeleteResult struct {
	OrderID         uint   `json:"order_id"`
	Code            string `json:"code"`
	ItemsRemoved    int    `json:"items_removed"`
	PaymentsRemoved int    `json:"payments_removed"`
	RestockedTotal  int    `json:"restocked_total"`
}

// Delete hard-removes an order, cascading its payments and restocking its
// items. Returns the cascade counts for observability.
func (os *OrderService) Delete(orderID uint) (DeleteResult, error) {
	var out DeleteResult
	err := os.store.Mutate(func(snap *models.Snapshot) error {
		order := snap.OrderByID(orderID)
		if order == nil {
			return models.NotFoundf("order %d not found", orderID)
		}
		out = DeleteResult{OrderID: order.ID, Code: order.Code, ItemsRemoved: len(order.Items)}
		for i := range order.Items {
			out.RestockedTotal += restoreStock(snap, &order.Items[i])
		}
		out.PaymentsRemoved = cascadeDeleteOrderPayments(snap, order.ID)
		kept := snap.Orders[:0]
		for _, o := range snap.Orders {
			if o.ID != orderID {
				kept = append(kept, o)
			}
		}
		snap.Orders = kept
		return nil
	})
	return out, err
}

// mutateOrder wraps the common pattern: locate the order, apply fn, return
// the recomputed order. The clone happens after Mutate succeeds so the
// returned value includes every recomputed field.
func (os *OrderService) mutateOrder(orderID uint, fn func(*models.Snapshot, *models.Order) error) (models.Order, error) {
	var out models.Order
	err := os.store.Mutate(func(snap *models.Snapshot) error {
		order := snap.OrderByID(orderID)
		if order == nil {
			return models.NotFoundf("order %d not found", orderID)
		}
		return fn(snap, order)
	})
	if err != nil {
		return models.Order{}, err
	}
	// Re-read the committed state for the response.
	viewErr := os.store.View(func(snap *models.Snapshot) error {
		if order := snap.OrderByID(orderID); order != nil {
			out = order.Clone()
		}
		return nil
	})
	return out, viewErr
}
