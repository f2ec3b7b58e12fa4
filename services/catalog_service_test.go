package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/recati/comanda-app/models"
)

func strPtr(s string) *string  { return &s }
func intPtr(i int) *int        { return &i }
func boolPtr(b bool) *bool     { return &b }
func idsPtr(ids ...uint) *[]uint { return &ids }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestCreateProduct(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	product, err := catalog.CreateProduct(ProductInput{
		Name:            strPtr("  Pao de Alho  "),
		Price:           decPtr(8),
		Stock:           intPtr(40),
		AllowedAddonIDs: idsPtr(addonFarofa),
	})
	require.NoError(t, err)
	require.Equal(t, "Pao de Alho", product.Name)
	require.Equal(t, "8.00", product.Price.StringFixed(2))
	require.True(t, product.Active)
	require.True(t, product.TracksStock)
	require.Equal(t, 40, product.Stock)
	require.Equal(t, []uint{addonFarofa}, product.AllowedAddonIDs)
}

func TestCreateProductValidation(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	tests := []struct {
		name string
		in   ProductInput
	}{
		{"missing name", ProductInput{Price: decPtr(5)}},
		{"blank name", ProductInput{Name: strPtr("   "), Price: decPtr(5)}},
		{"missing price", ProductInput{Name: strPtr("X")}},
		{"zero price", ProductInput{Name: strPtr("X"), Price: decPtr(0)}},
		{"negative stock", ProductInput{Name: strPtr("X"), Price: decPtr(5), Stock: intPtr(-1)}},
		{"unknown addon", ProductInput{Name: strPtr("X"), Price: decPtr(5), AllowedAddonIDs: idsPtr(99)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.CreateProduct(tt.in)
			requireKind(t, err, models.ErrValidation)
		})
	}
}

func TestUpdateProductPartial(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	updated, err := catalog.UpdateProduct(productEspeto, ProductInput{Price: decPtr(15)})
	require.NoError(t, err)
	require.Equal(t, "15.00", updated.Price.StringFixed(2))
	require.Equal(t, "Espeto Completo", updated.Name, "untouched fields survive")
	require.Equal(t, 10, updated.Stock)

	_, err = catalog.UpdateProduct(999, ProductInput{Price: decPtr(1)})
	requireKind(t, err, models.ErrNotFound)
}

func TestUpdateProductDoesNotRepriceExistingItems(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, "25.00", order.Total.StringFixed(2))

	_, err = catalog.UpdateProduct(productEspeto, ProductInput{Price: decPtr(100)})
	require.NoError(t, err)

	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, "25.00", got.Total.StringFixed(2), "line items keep their price snapshot")
}

func TestDeleteProductSoft(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	deleted, removed, err := catalog.DeleteProduct(productEspeto, false)
	require.NoError(t, err)
	require.False(t, deleted.Active)
	require.Zero(t, removed)

	got, err := catalog.GetProduct(productEspeto)
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestDeleteProductHardCascades(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 2})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productAgua, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, "29.00", order.Total.StringFixed(2))

	_, removed, err := catalog.DeleteProduct(productEspeto, true)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = catalog.GetProduct(productEspeto)
	requireKind(t, err, models.ErrNotFound)

	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "4.00", got.Total.StringFixed(2), "order recomputed after cascade")
}

func TestAdjustStock(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	updated, err := catalog.AdjustStock(productEspeto, -4)
	require.NoError(t, err)
	require.Equal(t, 6, updated.Stock)

	updated, err = catalog.AdjustStock(productEspeto, 10)
	require.NoError(t, err)
	require.Equal(t, 16, updated.Stock)

	_, err = catalog.AdjustStock(productEspeto, -17)
	requireKind(t, err, models.ErrConflict)
	require.Equal(t, 16, stockOf(t, st, productEspeto))

	_, err = catalog.AdjustStock(999, 1)
	requireKind(t, err, models.ErrNotFound)
}

func TestListProductsPaging(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	page, err := catalog.ListProducts(ProductFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)

	page, err = catalog.ListProducts(ProductFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	page, err = catalog.ListProducts(ProductFilter{Search: "costela"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Costela Fatiada", page.Items[0].Name)
}

func TestTopSellers(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)
	orders := NewOrderService(st)

	a, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	_, err = orders.AddItem(a.ID, ItemInput{ProductID: productEspeto, Quantity: 5})
	require.NoError(t, err)
	_, err = orders.AddItem(a.ID, ItemInput{ProductID: productAgua, Quantity: 2})
	require.NoError(t, err)

	b, err := orders.Open(OpenOrderInput{Code: "C-002"})
	require.NoError(t, err)
	_, err = orders.AddItem(b.ID, ItemInput{ProductID: productAgua, Quantity: 7})
	require.NoError(t, err)

	rows, err := catalog.TopSellers(2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, productAgua, rows[0].ProductID)
	require.Equal(t, 9, rows[0].TotalQuantity)
	require.Equal(t, productEspeto, rows[1].ProductID)
	require.Equal(t, 5, rows[1].TotalQuantity)
}

func TestAddonCRUD(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)

	addon, err := catalog.CreateAddon(AddonInput{Name: strPtr("Molho de Alho"), Price: decPtr(2)})
	require.NoError(t, err)
	require.Equal(t, "Molho de Alho", addon.Name)
	require.True(t, addon.Active)

	addon, err = catalog.UpdateAddon(addon.ID, AddonInput{Price: decPtr(2.5), Active: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, "2.50", addon.Price.StringFixed(2))
	require.False(t, addon.Active)

	rows, err := catalog.ListAddons(AddonFilter{ActiveOnly: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, err = catalog.CreateAddon(AddonInput{Name: strPtr("")})
	requireKind(t, err, models.ErrValidation)
}

func TestDeleteAddonHardCascades(t *testing.T) {
	st := newTestStore(t)
	catalog := NewCatalogService(st)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{
		ProductID: productCostela,
		Quantity:  1,
		Addons:    []AddonApplication{{AddonID: addonFarofa, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "23.00", order.Total.StringFixed(2))

	_, err = catalog.DeleteAddon(addonFarofa, true)
	require.NoError(t, err)

	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items[0].Addons)
	require.Equal(t, "20.00", got.Total.StringFixed(2), "addon price dropped from the total")

	costela, err := catalog.GetProduct(productCostela)
	require.NoError(t, err)
	require.Empty(t, costela.AllowedAddonIDs, "eligibility set scrubbed")
}
