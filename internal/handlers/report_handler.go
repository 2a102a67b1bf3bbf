package handlers

import (
	"fmt"
	"net/http"
	"time"

	"mobile-shop-erp/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GetDashboard returns the landing-page stats.
func GetDashboard(c *gin.Context) {
	stats, err := database.GetDashboardStats(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch dashboard statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// reportRange reads the mandatory startDate/endDate query params.
func reportRange(c *gin.Context) (start, end time.Time, ok bool) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "startDate and endDate are required"})
		return start, end, false
	}
	var err error
	if start, err = parseDate(startDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid startDate"})
		return start, end, false
	}
	if end, err = parseDate(endDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid endDate"})
		return start, end, false
	}
	return start, end, true
}

// GetSalesReport aggregates a date range: totals, daily breakdown, top sellers.
func GetSalesReport(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	report, err := database.GetSalesReport(database.DB, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate sales report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"period":            gin.H{"start_date": c.Query("startDate"), "end_date": c.Query("endDate")},
			"summary":           report.Totals,
			"daily_breakdown":   report.DailyBreakdown,
			"top_selling_items": report.TopItems,
		},
	})
}

// ExportSalesReport streams the same date-range report as an .xlsx workbook.
func ExportSalesReport(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	report, err := database.GetSalesReport(database.DB, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate sales report"})
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	rows := [][]interface{}{
		{"Sales Report", fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))},
		{},
		{"Total Sales", report.Totals.TotalSales},
		{"Total Profit", report.Totals.TotalProfit},
		{"Transactions", report.Totals.TransactionCount},
		{},
		{"Date", "Total", "Profit", "Transactions"},
	}
	for _, day := range report.DailyBreakdown {
		rows = append(rows, []interface{}{day.Date, day.Total, day.Profit, day.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Top Selling Items"},
		[]interface{}{"Type", "Name", "Quantity", "Revenue"})
	for _, item := range report.TopItems {
		rows = append(rows, []interface{}{item.ItemType, item.ItemName, item.TotalQuantity, item.TotalRevenue})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build report file"})
			return
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build report file"})
			return
		}
	}

	filename := fmt.Sprintf("sales-report-%s-%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// GetProfitReport breaks profit down by item type with margin percentages.
// Date bounds are optional.
func GetProfitReport(c *gin.Context) {
	var start, end time.Time
	var err error
	if v := c.Query("startDate"); v != "" {
		if start, err = parseDate(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid startDate"})
			return
		}
	}
	if v := c.Query("endDate"); v != "" {
		if end, err = parseDate(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid endDate"})
			return
		}
	}

	rows, err := database.GetProfitByType(database.DB, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate profit report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"profit_by_item_type": rows}})
}

// GetInventoryReport returns current stock counts, valuation and low-stock list.
func GetInventoryReport(c *gin.Context) {
	report, err := database.GetInventoryReport(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate inventory report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}
