package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recati/comanda-app/models"
)

func TestCreateCodeNormalizes(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)

	code, err := codes.Create("  c-042 ")
	require.NoError(t, err)
	require.Equal(t, "C-042", code.Code)
	require.True(t, code.Active)
	require.False(t, code.InUse)
	require.Equal(t, models.CodeStatusReleased, code.DisplayStatus)

	_, err = codes.Create("C-042")
	requireKind(t, err, models.ErrConflict)
	_, err = codes.Create("c-001")
	requireKind(t, err, models.ErrConflict)
	_, err = codes.Create("   ")
	requireKind(t, err, models.ErrValidation)
}

func TestListCodesFilters(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)
	orders := NewOrderService(st)

	_, err := orders.Open(OpenOrderInput{Code: "C-002"})
	require.NoError(t, err)

	all, err := codes.List(CodeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	active, err := codes.List(CodeFilter{ActiveOnly: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, active, 3)

	inUse, err := codes.List(CodeFilter{InUseOnly: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, inUse, 1)
	require.Equal(t, "C-002", inUse[0].Code)
	require.Equal(t, string(models.StatusOpen), inUse[0].DisplayStatus)
}

func TestSetCodeActive(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)

	code, err := codes.SetActive(codeC001, false)
	require.NoError(t, err)
	require.False(t, code.Active)
	require.Equal(t, models.CodeStatusCancelled, code.DisplayStatus)

	code, err = codes.SetActive(codeInactive, true)
	require.NoError(t, err)
	require.True(t, code.Active)

	_, err = codes.SetActive(999, true)
	requireKind(t, err, models.ErrNotFound)
}

func TestForceReleaseNeedsConfirm(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)
	_, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 4})
	require.NoError(t, err)
	require.Equal(t, 6, stockOf(t, st, productEspeto))

	_, err = codes.ForceRelease(codeC001, false)
	requireKind(t, err, models.ErrConflict)
	require.True(t, codeInUse(t, st, codeC001))

	released, err := codes.ForceRelease(codeC001, true)
	require.NoError(t, err)
	require.False(t, released.InUse)
	require.Equal(t, models.CodeStatusReleased, released.DisplayStatus)
	require.Equal(t, 10, stockOf(t, st, productEspeto))

	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, got.Status)
}

func TestForceReleaseFreeCodeNoConfirmNeeded(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)

	released, err := codes.ForceRelease(codeC001, false)
	require.NoError(t, err)
	require.False(t, released.InUse)
}

func TestDeleteCode(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)
	orders := NewOrderService(st)

	_, err := orders.Open(OpenOrderInput{Code: "C-001"})
	require.NoError(t, err)

	_, err = codes.Delete(codeC001)
	requireKind(t, err, models.ErrConflict)

	deleted, err := codes.Delete(codeC002)
	require.NoError(t, err)
	require.Equal(t, "C-002", deleted.Code)

	rows, err := codes.List(CodeFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	_, err = codes.Delete(codeC002)
	requireKind(t, err, models.ErrNotFound)
}

func TestCodePanel(t *testing.T) {
	st := newTestStore(t)
	codes := NewCodeService(st)
	orders := NewOrderService(st)

	order, err := orders.Open(OpenOrderInput{Code: "C-002", Table: "9"})
	require.NoError(t, err)
	order, err = orders.AddItem(order.ID, ItemInput{ProductID: productEspeto, Quantity: 2})
	require.NoError(t, err)

	rows, err := codes.Panel(nil)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Sorted by code, so C-001 first and the occupied C-002 second.
	require.Equal(t, "C-001", rows[0].Code)
	require.False(t, rows[0].InUse)
	require.Nil(t, rows[0].OrderID)

	require.Equal(t, "C-002", rows[1].Code)
	require.True(t, rows[1].InUse)
	require.NotNil(t, rows[1].OrderID)
	require.Equal(t, order.ID, *rows[1].OrderID)
	require.Equal(t, "9", rows[1].Table)
	require.Equal(t, string(models.StatusOpen), rows[1].Status)
	require.Equal(t, "25.00", rows[1].Total.StringFixed(2))

	activeRows, err := codes.Panel(boolPtr(true))
	require.NoError(t, err)
	require.Len(t, activeRows, 3)
}
