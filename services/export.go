package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/utils"
)

// CSV exports are UTF-8 with a leading BOM so spreadsheet tools pick the
// encoding up; quoting follows RFC 4180 (quotes doubled, fields containing
// comma/quote/newline wrapped).

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func writeCSV(rows [][]string) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		// Write never fails on a bytes.Buffer; flush below surfaces nothing.
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DailyClosingCSV renders the closing report: key/value summary rows, a
// blank separator, then the per-method collection table.
func DailyClosingCSV(report models.ClosingReport) []byte {
	rows := [][]string{
		{"Date", report.Date},
		{"Total orders", strconv.Itoa(report.TotalOrders)},
		{"Valid orders", strconv.Itoa(report.ValidOrders)},
		{"Cancelled orders", strconv.Itoa(report.CancelledOrders)},
		{"Total sold", report.TotalSold.StringFixed(2)},
		{"Total collected", report.TotalCollected.StringFixed(2)},
		{"Average ticket", report.AverageTicket.StringFixed(2)},
		{"", ""},
		{"Method", "Total"},
	}
	for _, method := range sortedKeys(report.CollectedByMethod) {
		rows = append(rows, []string{method, report.CollectedByMethod[method].StringFixed(2)})
	}
	return writeCSV(rows)
}

// PeriodRevenueCSV renders the period report: range summary rows, a blank
// separator, then one row per calendar day.
func PeriodRevenueCSV(report models.PeriodReport) []byte {
	rows := [][]string{
		{"Start date", report.StartDate},
		{"End date", report.EndDate},
		{"Total orders", strconv.Itoa(report.TotalOrders)},
		{"Total sold", report.TotalSold.StringFixed(2)},
		{"Total collected", report.TotalCollected.StringFixed(2)},
		{"Average ticket", report.AverageTicket.StringFixed(2)},
		{"", ""},
		{"Day", "Orders", "Cancelled", "Sold", "Collected"},
	}
	for _, day := range report.Days {
		rows = append(rows, []string{
			day.Date,
			strconv.Itoa(day.TotalOrders),
			strconv.Itoa(day.CancelledOrders),
			day.TotalSold.StringFixed(2),
			day.TotalCollected.StringFixed(2),
		})
	}
	return writeCSV(rows)
}

// BuildReceipt assembles the renderer-ready DTO for a customer receipt or
// kitchen ticket. No markup is produced here; the renderer owns layout.
func BuildReceipt(order models.Order, kitchen, autoPrint bool) models.ReceiptData {
	title := fmt.Sprintf("Receipt %s", order.Code)
	if kitchen {
		title = fmt.Sprintf("Kitchen ticket %s", order.Code)
	}
	receipt := models.ReceiptData{
		OrderID:        order.ID,
		Code:           order.Code,
		Table:          order.Table,
		Status:         order.Status,
		DeliveryType:   order.DeliveryType,
		Notes:          order.Notes,
		Kitchen:        kitchen,
		AutoPrint:      autoPrint,
		Title:          title,
		Total:          order.Total,
		TotalFormatted: utils.FormatCurrencyBRL(order.Total),
		CreatedAt:      order.CreatedAt,
	}
	for _, item := range order.Items {
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			Quantity:  item.Quantity,
			Name:      item.ProductName,
			Notes:     item.Notes,
			Subtotal:  item.Subtotal,
			Formatted: fmt.Sprintf("%dx %s - %s", item.Quantity, item.ProductName, utils.FormatCurrencyBRL(item.Subtotal)),
		})
	}
	return receipt
}
