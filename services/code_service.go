package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/store"
)

// CodeService owns the registry of comanda codes.
type CodeService struct {
	store *store.Store
}

func NewCodeService(s *store.Store) *CodeService {
	return &CodeService{store: s}
}

func displayStatus(snap *models.Snapshot, code *models.ComandaCode) string {
	if !code.Active {
		return models.CodeStatusCancelled
	}
	if order := snap.OpenOrderByCode(code.Code); order != nil {
		return string(order.Status)
	}
	return models.CodeStatusReleased
}

func (cs *CodeService) Create(code string) (models.CodeView, error) {
	var created models.CodeView
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		key := strings.ToUpper(strings.TrimSpace(code))
		if key == "" {
			return models.Validationf("code", "code is required")
		}
		if snap.CodeByCode(key) != nil {
			return models.Conflictf("code %q already exists", key)
		}
		row := models.ComandaCode{
			ID:        models.NextID(&snap.Counters.Code),
			Code:      key,
			Active:    true,
			CreatedAt: time.Now(),
		}
		snap.Codes = append(snap.Codes, row)
		created = models.CodeView{ComandaCode: row, DisplayStatus: models.CodeStatusReleased}
		return nil
	})
	return created, err
}

type CodeFilter struct {
	ActiveOnly *bool
	InUseOnly  *bool
}

func (cs *CodeService) List(filter CodeFilter) ([]models.CodeView, error) {
	var out []models.CodeView
	err := cs.store.View(func(snap *models.Snapshot) error {
		for i := range snap.Codes {
			code := &snap.Codes[i]
			if filter.ActiveOnly != nil && code.Active != *filter.ActiveOnly {
				continue
			}
			if filter.InUseOnly != nil && code.InUse != *filter.InUseOnly {
				continue
			}
			out = append(out, models.CodeView{ComandaCode: *code, DisplayStatus: displayStatus(snap, code)})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

func (cs *CodeService) SetActive(id uint, active bool) (models.CodeView, error) {
	var updated models.CodeView
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		code := snap.CodeByID(id)
		if code == nil {
			return models.NotFoundf("code %d not found", id)
		}
		code.Active = active
		updated = models.CodeView{ComandaCode: *code, DisplayStatus: displayStatus(snap, code)}
		return nil
	})
	return updated, err
}

// ForceRelease frees a code. When a non-terminal order still references it,
// the caller must confirm; the order is then cancelled with its items
// restocked.
func (cs *CodeService) ForceRelease(id uint, confirm bool) (models.CodeView, error) {
	var released models.CodeView
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		code := snap.CodeByID(id)
		if code == nil {
			return models.NotFoundf("code %d not found", id)
		}
		if order := snap.OpenOrderByCode(code.Code); order != nil {
			if !confirm {
				return models.Conflictf("code %q backs an open order; confirm to release", code.Code)
			}
			for i := range order.Items {
				restoreStock(snap, &order.Items[i])
			}
			order.Status = models.StatusCancelled
		}
		code.InUse = false
		released = models.CodeView{ComandaCode: *code, DisplayStatus: displayStatus(snap, code)}
		released.InUse = false
		released.DisplayStatus = models.CodeStatusReleased
		if !code.Active {
			released.DisplayStatus = models.CodeStatusCancelled
		}
		return nil
	})
	return released, err
}

func (cs *CodeService) Delete(id uint) (models.CodeView, error) {
	var deleted models.CodeView
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		code := snap.CodeByID(id)
		if code == nil {
			return models.NotFoundf("code %d not found", id)
		}
		if snap.OpenOrderByCode(code.Code) != nil {
			return models.Conflictf("code %q is in use and cannot be deleted", code.Code)
		}
		deleted = models.CodeView{ComandaCode: *code, DisplayStatus: displayStatus(snap, code)}
		kept := snap.Codes[:0]
		for _, c := range snap.Codes {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		snap.Codes = kept
		return nil
	})
	return deleted, err
}

// PanelRow is one entry of the till panel: a code plus whatever open order
// currently backs it.
type PanelRow struct {
	CodeID       uint                `json:"code_id"`
	Code         string              `json:"code"`
	Active       bool                `json:"active"`
	InUse        bool                `json:"in_use"`
	Status       string              `json:"status"`
	OrderID      *uint               `json:"order_id,omitempty"`
	Table        string              `json:"table,omitempty"`
	DeliveryType models.DeliveryType `json:"delivery_type,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (cs *CodeService) Panel(activeOnly *bool) ([]PanelRow, error) {
	var out []PanelRow
	err := cs.store.View(func(snap *models.Snapshot) error {
		for i := range snap.Codes {
			code := &snap.Codes[i]
			if activeOnly != nil && code.Active != *activeOnly {
				continue
			}
			row := PanelRow{
				CodeID:    code.ID,
				Code:      code.Code,
				Active:    code.Active,
				InUse:     code.InUse,
				Status:    models.CodeStatusReleased,
				Total:     decimal.Zero,
				CreatedAt: code.CreatedAt,
			}
			if order := snap.OpenOrderByCode(code.Code); order != nil {
				id := order.ID
				row.Status = string(order.Status)
				row.OrderID = &id
				row.Table = order.Table
				row.DeliveryType = order.DeliveryType
				row.Total = order.Total
				row.CreatedAt = order.CreatedAt
			}
			out = append(out, row)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return nil
	})
	return out, err
}
