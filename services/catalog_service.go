package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/store"
)

// CatalogService owns products and addons.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(s *store.Store) *CatalogService {
	return &CatalogService{store: s}
}

// ProductInput carries both create and partial-update payloads; nil fields
// are left untouched on update.
type ProductInput struct {
	Name            *string          `json:"name"`
	Category        *string          `json:"category"`
	Description     *string          `json:"description"`
	ImageURL        *string          `json:"image_url"`
	Price           *decimal.Decimal `json:"price"`
	Active          *bool            `json:"active"`
	TracksStock     *bool            `json:"tracks_stock"`
	Stock           *int             `json:"stock"`
	AllowedAddonIDs *[]uint          `json:"allowed_addon_ids"`
}

type ProductFilter struct {
	Search     string
	ActiveOnly *bool
	Page       int
	PageSize   int
}

type ProductPage struct {
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
	Items    []models.Product `json:"items"`
}

func (cs *CatalogService) CreateProduct(in ProductInput) (models.Product, error) {
	var created models.Product
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		name := ""
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
		}
		if name == "" {
			return models.Validationf("name", "product name is required")
		}
		if in.Price == nil || !in.Price.IsPositive() {
			return models.Validationf("price", "price must be greater than zero")
		}

		product := models.Product{
			ID:          models.NextID(&snap.Counters.Product),
			Name:        name,
			Price:       models.Money(*in.Price),
			Active:      true,
			TracksStock: true,
			CreatedAt:   time.Now(),
		}
		if in.Category != nil {
			product.Category = strings.TrimSpace(*in.Category)
		}
		if in.Description != nil {
			product.Description = strings.TrimSpace(*in.Description)
		}
		if in.ImageURL != nil {
			product.ImageURL = strings.TrimSpace(*in.ImageURL)
		}
		if in.Active != nil {
			product.Active = *in.Active
		}
		if in.TracksStock != nil {
			product.TracksStock = *in.TracksStock
		}
		if in.Stock != nil {
			if *in.Stock < 0 {
				return models.Validationf("stock", "stock cannot be negative")
			}
			product.Stock = *in.Stock
		}
		if in.AllowedAddonIDs != nil {
			for _, id := range *in.AllowedAddonIDs {
				if snap.AddonByID(id) == nil {
					return models.Validationf("allowed_addon_ids", "addon %d not found", id)
				}
			}
			product.AllowedAddonIDs = append([]uint(nil), *in.AllowedAddonIDs...)
		}

		snap.Products = append(snap.Products, product)
		created = product.Clone()
		return nil
	})
	return created, err
}

func (cs *CatalogService) ListProducts(filter ProductFilter) (ProductPage, error) {
	page := ProductPage{Page: filter.Page, PageSize: filter.PageSize}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = 20
	}
	if page.PageSize > 500 {
		page.PageSize = 500
	}

	err := cs.store.View(func(snap *models.Snapshot) error {
		search := strings.ToLower(strings.TrimSpace(filter.Search))
		var rows []models.Product
		for i := range snap.Products {
			p := &snap.Products[i]
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			if filter.ActiveOnly != nil && p.Active != *filter.ActiveOnly {
				continue
			}
			rows = append(rows, p.Clone())
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

		page.Total = len(rows)
		start := (page.Page - 1) * page.PageSize
		if start > len(rows) {
			start = len(rows)
		}
		end := start + page.PageSize
		if end > len(rows) {
			end = len(rows)
		}
		page.Items = rows[start:end]
		return nil
	})
	return page, err
}

func (cs *CatalogService) GetProduct(id uint) (models.Product, error) {
	var out models.Product
	err := cs.store.View(func(snap *models.Snapshot) error {
		product := snap.ProductByID(id)
		if product == nil {
			return models.NotFoundf("product %d not found", id)
		}
		out = product.Clone()
		return nil
	})
	return out, err
}

func (cs *CatalogService) UpdateProduct(id uint, in ProductInput) (models.Product, error) {
	var updated models.Product
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		product := snap.ProductByID(id)
		if product == nil {
			return models.NotFoundf("product %d not found", id)
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return models.Validationf("name", "product name is required")
			}
			product.Name = name
		}
		if in.Price != nil {
			if !in.Price.IsPositive() {
				return models.Validationf("price", "price must be greater than zero")
			}
			product.Price = models.Money(*in.Price)
		}
		if in.Category != nil {
			product.Category = strings.TrimSpace(*in.Category)
		}
		if in.Description != nil {
			product.Description = strings.TrimSpace(*in.Description)
		}
		if in.ImageURL != nil {
			product.ImageURL = strings.TrimSpace(*in.ImageURL)
		}
		if in.Active != nil {
			product.Active = *in.Active
		}
		if in.TracksStock != nil {
			product.TracksStock = *in.TracksStock
		}
		if in.Stock != nil {
			if *in.Stock < 0 {
				return models.Validationf("stock", "stock cannot be negative")
			}
			product.Stock = *in.Stock
		}
		if in.AllowedAddonIDs != nil {
			for _, addonID := range *in.AllowedAddonIDs {
				if snap.AddonByID(addonID) == nil {
					return models.Validationf("allowed_addon_ids", "addon %d not found", addonID)
				}
			}
			product.AllowedAddonIDs = append([]uint(nil), *in.AllowedAddonIDs...)
		}
		updated = product.Clone()
		return nil
	})
	return updated, err
}

// DeleteProduct soft-deletes by default. A hard delete cascades into every
// order's line items; affected orders are recomputed by the store.
func (cs *CatalogService) DeleteProduct(id uint, hard bool) (models.Product, int, error) {
	var deleted models.Product
	itemsRemoved := 0
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		product := snap.ProductByID(id)
		if product == nil {
			return models.NotFoundf("product %d not found", id)
		}
		deleted = product.Clone()
		if !hard {
			product.Active = false
			deleted.Active = false
			return nil
		}
		itemsRemoved = cascadeDeleteProduct(snap, id)
		kept := snap.Products[:0]
		for _, p := range snap.Products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		snap.Products = kept
		return nil
	})
	return deleted, itemsRemoved, err
}

// AdjustStock applies a delta to a product's stock. A delta that would drive
// stock negative fails with Conflict; nothing is clamped.
func (cs *CatalogService) AdjustStock(id uint, delta int) (models.Product, error) {
	var updated models.Product
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		product := snap.ProductByID(id)
		if product == nil {
			return models.NotFoundf("product %d not found", id)
		}
		next := product.Stock + delta
		if next < 0 {
			return models.Conflictf("stock of %q would go negative (%d%+d)", product.Name, product.Stock, delta)
		}
		product.Stock = next
		updated = product.Clone()
		return nil
	})
	return updated, err
}

type TopSeller struct {
	ProductID     uint            `json:"product_id"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"image_url,omitempty"`
	Price         decimal.Decimal `json:"price"`
	TotalQuantity int             `json:"total_quantity"`
}

// TopSellers ranks products by total quantity across every order on record.
func (cs *CatalogService) TopSellers(limit int) ([]TopSeller, error) {
	if limit < 1 {
		limit = 8
	}
	if limit > 30 {
		limit = 30
	}
	var out []TopSeller
	err := cs.store.View(func(snap *models.Snapshot) error {
		byProduct := map[uint]*TopSeller{}
		for i := range snap.Orders {
			for _, item := range snap.Orders[i].Items {
				row, ok := byProduct[item.ProductID]
				if !ok {
					row = &TopSeller{ProductID: item.ProductID, Name: item.ProductName, Price: item.UnitPrice}
					if p := snap.ProductByID(item.ProductID); p != nil {
						row.Name = p.Name
						row.ImageURL = p.ImageURL
						row.Price = p.Price
					}
					byProduct[item.ProductID] = row
				}
				row.TotalQuantity += item.Quantity
			}
		}
		out = make([]TopSeller, 0, len(byProduct))
		for _, row := range byProduct {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].TotalQuantity != out[j].TotalQuantity {
				return out[i].TotalQuantity > out[j].TotalQuantity
			}
			return out[i].ProductID < out[j].ProductID
		})
		if len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

type AddonInput struct {
	Name   *string          `json:"name"`
	Price  *decimal.Decimal `json:"price"`
	Active *bool            `json:"active"`
}

type AddonFilter struct {
	Search     string
	ActiveOnly *bool
	Offset     int
	Limit      int
}

func (cs *CatalogService) CreateAddon(in AddonInput) (models.Addon, error) {
	var created models.Addon
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		name := ""
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
		}
		if name == "" {
			return models.Validationf("name", "addon name is required")
		}
		if in.Price == nil || !in.Price.IsPositive() {
			return models.Validationf("price", "price must be greater than zero")
		}
		addon := models.Addon{
			ID:        models.NextID(&snap.Counters.Addon),
			Name:      name,
			Price:     models.Money(*in.Price),
			Active:    true,
			CreatedAt: time.Now(),
		}
		if in.Active != nil {
			addon.Active = *in.Active
		}
		snap.Addons = append(snap.Addons, addon)
		created = addon
		return nil
	})
	return created, err
}

func (cs *CatalogService) ListAddons(filter AddonFilter) ([]models.Addon, error) {
	if filter.Limit < 1 {
		filter.Limit = 500
	}
	if filter.Limit > 5000 {
		filter.Limit = 5000
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	var out []models.Addon
	err := cs.store.View(func(snap *models.Snapshot) error {
		search := strings.ToLower(strings.TrimSpace(filter.Search))
		rows := make([]models.Addon, 0, len(snap.Addons))
		for _, a := range snap.Addons {
			if search != "" && !strings.Contains(strings.ToLower(a.Name), search) {
				continue
			}
			if filter.ActiveOnly != nil && a.Active != *filter.ActiveOnly {
				continue
			}
			rows = append(rows, a)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
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

func (cs *CatalogService) GetAddon(id uint) (models.Addon, error) {
	var out models.Addon
	err := cs.store.View(func(snap *models.Snapshot) error {
		addon := snap.AddonByID(id)
		if addon == nil {
			return models.NotFoundf("addon %d not found", id)
		}
		out = *addon
		return nil
	})
	return out, err
}

func (cs *CatalogService) UpdateAddon(id uint, in AddonInput) (models.Addon, error) {
	var updated models.Addon
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		addon := snap.AddonByID(id)
		if addon == nil {
			return models.NotFoundf("addon %d not found", id)
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return models.Validationf("name", "addon name is required")
			}
			addon.Name = name
		}
		if in.Price != nil {
			if !in.Price.IsPositive() {
				return models.Validationf("price", "price must be greater than zero")
			}
			addon.Price = models.Money(*in.Price)
		}
		if in.Active != nil {
			addon.Active = *in.Active
		}
		updated = *addon
		return nil
	})
	return updated, err
}

// DeleteAddon soft-deletes by default. A hard delete cascades into product
// eligibility sets and into already-placed addon applications.
func (cs *CatalogService) DeleteAddon(id uint, hard bool) (models.Addon, error) {
	var deleted models.Addon
	err := cs.store.Mutate(func(snap *models.Snapshot) error {
		addon := snap.AddonByID(id)
		if addon == nil {
			return models.NotFoundf("addon %d not found", id)
		}
		if !hard {
			addon.Active = false
			deleted = *addon
			return nil
		}
		deleted = *addon
		cascadeDeleteAddon(snap, id)
		kept := snap.Addons[:0]
		for _, a := range snap.Addons {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		snap.Addons = kept
		return nil
	})
	return deleted, err
}
