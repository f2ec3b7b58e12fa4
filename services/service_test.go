package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/store"
)

// Fixture ids, matching insertion order in testSnapshot.
const (
	addonFarofa    uint = 1
	addonVinagrete uint = 2

	productEspeto  uint = 1 // tracked, stock 10, every addon allowed
	productAgua    uint = 2 // untracked
	productCostela uint = 3 // tracked, stock 5, only Farofa allowed

	codeC001     uint = 1
	codeC002     uint = 2
	codeC003     uint = 3
	codeInactive uint = 4
)

func testSnapshot() *models.Snapshot {
	now := time.Now()
	snap := models.NewSnapshot()

	snap.Addons = append(snap.Addons,
		models.Addon{ID: models.NextID(&snap.Counters.Addon), Name: "Farofa Extra", Price: decimal.NewFromFloat(3), Active: true, CreatedAt: now},
		models.Addon{ID: models.NextID(&snap.Counters.Addon), Name: "Vinagrete", Price: decimal.NewFromFloat(2.5), Active: true, CreatedAt: now},
	)
	snap.Products = append(snap.Products,
		models.Product{ID: models.NextID(&snap.Counters.Product), Name: "Espeto Completo", Price: decimal.NewFromFloat(12.5), Active: true, TracksStock: true, Stock: 10, CreatedAt: now},
		models.Product{ID: models.NextID(&snap.Counters.Product), Name: "Agua Mineral", Price: decimal.NewFromFloat(4), Active: true, TracksStock: false, CreatedAt: now},
		models.Product{ID: models.NextID(&snap.Counters.Product), Name: "Costela Fatiada", Price: decimal.NewFromFloat(20), Active: true, TracksStock: true, Stock: 5, AllowedAddonIDs: []uint{addonFarofa}, CreatedAt: now},
	)
	snap.Codes = append(snap.Codes,
		models.ComandaCode{ID: models.NextID(&snap.Counters.Code), Code: "C-001", Active: true, CreatedAt: now},
		models.ComandaCode{ID: models.NextID(&snap.Counters.Code), Code: "C-002", Active: true, CreatedAt: now},
		models.ComandaCode{ID: models.NextID(&snap.Counters.Code), Code: "C-003", Active: true, CreatedAt: now},
		models.ComandaCode{ID: models.NextID(&snap.Counters.Code), Code: "C-900", Active: false, CreatedAt: now},
	)

	snap.Recalc()
	return snap
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(store.NewMemoryGateway(), testSnapshot)
	require.NoError(t, err)
	return st
}

func stockOf(t *testing.T, st *store.Store, productID uint) int {
	t.Helper()
	var stock int
	err := st.View(func(snap *models.Snapshot) error {
		product := snap.ProductByID(productID)
		require.NotNil(t, product)
		stock = product.Stock
		return nil
	})
	require.NoError(t, err)
	return stock
}

func codeInUse(t *testing.T, st *store.Store, codeID uint) bool {
	t.Helper()
	var inUse bool
	err := st.View(func(snap *models.Snapshot) error {
		code := snap.CodeByID(codeID)
		require.NotNil(t, code)
		inUse = code.InUse
		return nil
	})
	require.NoError(t, err)
	return inUse
}

func requireKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, kind, appErr.Kind)
}
