package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recati/comanda-app/models"
	"github.com/recati/comanda-app/store"
)

const dateLayout = "2006-01-02"

// ReportService is the pure read side: every report is re-derived from
// orders and payments on each call, so re-running it on the same input is
// idempotent and order-independent.
type ReportService struct {
	store *store.Store
}

func NewReportService(s *store.Store) *ReportService {
	return &ReportService{store: s}
}

// metricsInRange aggregates orders created within [start, end] (inclusive
// date keys) and the approved payments attached to them.
func metricsInRange(snap *models.Snapshot, start, end string) models.Metrics {
	m := models.Metrics{
		TotalSold:             decimal.Zero,
		TotalCollected:        decimal.Zero,
		TotalCancelled:        decimal.Zero,
		AverageTicket:         decimal.Zero,
		OrdersByStatus:        map[string]int{},
		OrdersByDeliveryType:  map[string]int{},
		RevenueByDeliveryType: map[string]decimal.Decimal{},
		CollectedByMethod:     map[string]decimal.Decimal{},
	}

	inRange := map[uint]bool{}
	for i := range snap.Orders {
		o := &snap.Orders[i]
		day := dateKey(o.CreatedAt)
		if start != "" && day < start {
			continue
		}
		if end != "" && day > end {
			continue
		}
		inRange[o.ID] = true

		m.TotalOrders++
		m.OrdersByStatus[string(o.Status)]++
		m.OrdersByDeliveryType[string(o.DeliveryType)]++
		if o.Status == models.StatusCancelled {
			m.CancelledOrders++
			m.TotalCancelled = models.Money(m.TotalCancelled.Add(o.Total))
		} else {
			m.TotalSold = models.Money(m.TotalSold.Add(o.Total))
			key := string(o.DeliveryType)
			prev, ok := m.RevenueByDeliveryType[key]
			if !ok {
				prev = decimal.Zero
			}
			m.RevenueByDeliveryType[key] = models.Money(prev.Add(o.Total))
		}
	}

	for i := range snap.Payments {
		p := &snap.Payments[i]
		if !inRange[p.OrderID] || p.Status != models.PaymentApproved {
			continue
		}
		day := dateKey(p.CreatedAt)
		if start != "" && day < start {
			continue
		}
		if end != "" && day > end {
			continue
		}
		m.TotalCollected = models.Money(m.TotalCollected.Add(p.Amount))
		prev, ok := m.CollectedByMethod[string(p.Method)]
		if !ok {
			prev = decimal.Zero
		}
		m.CollectedByMethod[string(p.Method)] = models.Money(prev.Add(p.Amount))
	}

	m.ValidOrders = m.TotalOrders - m.CancelledOrders
	if m.ValidOrders > 0 {
		m.AverageTicket = m.TotalSold.DivRound(decimal.NewFromInt(int64(m.ValidOrders)), 2)
	}
	return m
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, models.Validationf(field, "invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}

// DailyClosing builds the end-of-day summary for one date. An empty range
// yields zeroed aggregates, never an error.
func (rs *ReportService) DailyClosing(date string) (models.ClosingReport, error) {
	if date == "" {
		date = dateKey(time.Now())
	}
	if _, err := parseDate("date", date); err != nil {
		return models.ClosingReport{}, err
	}
	var report models.ClosingReport
	err := rs.store.View(func(snap *models.Snapshot) error {
		report = models.ClosingReport{Date: date, Metrics: metricsInRange(snap, date, date)}
		return nil
	})
	return report, err
}

// PeriodRevenue aggregates an inclusive date range and emits one closing row
// per calendar day, ascending, including zeroed rows for days without
// orders. Long ranges check ctx between days; reports never write, so
// cancellation leaves no side effects.
func (rs *ReportService) PeriodRevenue(ctx context.Context, start, end string) (models.PeriodReport, error) {
	if start == "" {
		start = dateKey(time.Now())
	}
	if end == "" {
		end = start
	}
	startDay, err := parseDate("start", start)
	if err != nil {
		return models.PeriodReport{}, err
	}
	endDay, err := parseDate("end", end)
	if err != nil {
		return models.PeriodReport{}, err
	}
	if start > end {
		return models.PeriodReport{}, models.Validationf("start", "start date must not be after end date")
	}

	var report models.PeriodReport
	viewErr := rs.store.View(func(snap *models.Snapshot) error {
		report = models.PeriodReport{
			StartDate: start,
			EndDate:   end,
			Metrics:   metricsInRange(snap, start, end),
		}
		for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := dateKey(day)
			report.Days = append(report.Days, models.ClosingReport{
				Date:    key,
				Metrics: metricsInRange(snap, key, key),
			})
		}
		return nil
	})
	if viewErr != nil {
		return models.PeriodReport{}, viewErr
	}
	return report, nil
}
