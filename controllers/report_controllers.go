package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/utils"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GetDailyClosing returns the closing numbers for one day (today when
// ?date is omitted).
func (rc *ReportController) GetDailyClosing(c *gin.Context) {
	report, err := rc.reports.DailyClosing(c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily closing report", report)
}

func (rc *ReportController) GetDailyClosingCSV(c *gin.Context) {
	report, err := rc.reports.DailyClosing(c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	name := fmt.Sprintf("closing-%s.csv", report.Date)
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", services.DailyClosingCSV(report))
}

func (rc *ReportController) GetPeriodRevenue(c *gin.Context) {
	report, err := rc.reports.PeriodRevenue(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Period revenue report", report)
}

func (rc *ReportController) GetPeriodRevenueCSV(c *gin.Context) {
	report, err := rc.reports.PeriodRevenue(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	name := fmt.Sprintf("revenue-%s-%s.csv", report.StartDate, report.EndDate)
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", services.PeriodRevenueCSV(report))
}
