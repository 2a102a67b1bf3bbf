package database

import (
	"time"

	"mobile-shop-erp/internal/models"

	"gorm.io/gorm"
)

// DailySales is one row of a per-day sales series.
type DailySales struct {
	Date   string  `json:"date"`
	Total  float64 `json:"total"`
	Profit float64 `json:"profit"`
	Count  int64   `json:"count"`
}

// DashboardStats feeds the landing-page widgets.
type DashboardStats struct {
	TodaySales          float64      `json:"today_sales"`
	TodayProfit         float64      `json:"today_profit"`
	MobilesInStock      int64        `json:"mobiles_in_stock"`
	MobilesSold         int64        `json:"mobiles_sold"`
	LowStockAccessories int64        `json:"low_stock_accessories"`
	TotalInventoryValue float64      `json:"total_inventory_value"`
	WeeklySales         []DailySales `json:"weekly_sales"`
}

// GetDashboardStats computes today's revenue/profit, stock counters, the
// purchase-cost valuation of everything on hand and the last-7-days series.
func GetDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	var stats DashboardStats

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	// COALESCE keeps the sums at 0 instead of NULL when no rows match.
	err := db.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TodaySales).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&stats.TodayProfit).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Mobile{}).
		Where("status = ?", models.StatusInStock).
		Count(&stats.MobilesInStock).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Mobile{}).
		Where("status = ?", models.StatusSold).
		Count(&stats.MobilesSold).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Accessory{}).
		Where("quantity <= reorder_level").
		Count(&stats.LowStockAccessories).Error; err != nil {
		return nil, err
	}

	var mobilesValue, accessoriesValue float64
	err = db.Model(&models.Mobile{}).
		Where("status = ?", models.StatusInStock).
		Select("COALESCE(SUM(purchase_price), 0)").
		Scan(&mobilesValue).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Accessory{}).
		Select("COALESCE(SUM(purchase_price * quantity), 0)").
		Scan(&accessoriesValue).Error
	if err != nil {
		return nil, err
	}
	stats.TotalInventoryValue = mobilesValue + accessoriesValue

	weekStart := dayStart.AddDate(0, 0, -6)
	err = db.Model(&models.Sale{}).
		Select("DATE(sale_date) as date, COALESCE(SUM(total_amount), 0) as total, COALESCE(SUM(profit), 0) as profit, COUNT(id) as count").
		Where("sale_date >= ?", weekStart).
		Group("DATE(sale_date)").
		Order("date ASC").
		Scan(&stats.WeeklySales).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// ReportTotals summarizes a date range.
type ReportTotals struct {
	TotalSales       float64 `json:"total_sales"`
	TotalProfit      float64 `json:"total_profit"`
	TransactionCount int64   `json:"transaction_count"`
}

// TopItem is one entry of the best-sellers list.
type TopItem struct {
	ItemType      string  `json:"item_type"`
	ItemName      string  `json:"item_name"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// SalesReport is the date-range report: totals, per-day breakdown, top sellers.
type SalesReport struct {
	Totals         ReportTotals `json:"summary"`
	DailyBreakdown []DailySales `json:"daily_breakdown"`
	TopItems       []TopItem    `json:"top_selling_items"`
}

// GetSalesReport aggregates committed sales between start and end (inclusive).
func GetSalesReport(db *gorm.DB, start, end time.Time) (*SalesReport, error) {
	var report SalesReport

	rangeCond := db.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", start, end.AddDate(0, 0, 1))

	err := rangeCond.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0) as total_sales, COALESCE(SUM(profit), 0) as total_profit, COUNT(id) as transaction_count").
		Scan(&report.Totals).Error
	if err != nil {
		return nil, err
	}

	err = rangeCond.Session(&gorm.Session{}).
		Select("DATE(sale_date) as date, COALESCE(SUM(total_amount), 0) as total, COALESCE(SUM(profit), 0) as profit, COUNT(id) as count").
		Group("DATE(sale_date)").
		Order("date DESC").
		Scan(&report.DailyBreakdown).Error
	if err != nil {
		return nil, err
	}

	err = db.Table("sale_items").
		Select("sale_items.item_type, sale_items.item_name, SUM(sale_items.quantity) as total_quantity, SUM(sale_items.total_price) as total_revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", start, end.AddDate(0, 0, 1)).
		Group("sale_items.item_type, sale_items.item_id, sale_items.item_name").
		Order("total_revenue DESC").
		Limit(10).
		Scan(&report.TopItems).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// TypeProfit is the profit rollup for one item type (mobile or accessory).
type TypeProfit struct {
	ItemType     string  `json:"item_type"`
	TotalProfit  float64 `json:"total_profit"`
	TotalRevenue float64 `json:"total_revenue"`
	ItemCount    int64   `json:"item_count"`
	ProfitMargin float64 `json:"profit_margin"`
}

// GetProfitByType breaks profit down by item type; a zero time bound means
// unbounded on that side.
func GetProfitByType(db *gorm.DB, start, end time.Time) ([]TypeProfit, error) {
	query := db.Table("sale_items").
		Select("sale_items.item_type, COALESCE(SUM(sale_items.profit), 0) as total_profit, COALESCE(SUM(sale_items.total_price), 0) as total_revenue, COUNT(sale_items.id) as item_count").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Group("sale_items.item_type")

	if !start.IsZero() {
		query = query.Where("sales.sale_date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("sales.sale_date < ?", end.AddDate(0, 0, 1))
	}

	var rows []TypeProfit
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].TotalRevenue > 0 {
			rows[i].ProfitMargin = rows[i].TotalProfit / rows[i].TotalRevenue * 100
		}
	}
	return rows, nil
}

// InventoryReport is the current-stock snapshot.
type InventoryReport struct {
	MobilesInStock   int64              `json:"mobiles_in_stock"`
	MobilesValue     float64            `json:"mobiles_value"`
	AccessoryUnits   int64              `json:"accessory_units"`
	AccessoriesValue float64            `json:"accessories_value"`
	LowStock         []models.Accessory `json:"low_stock"`
}

// GetInventoryReport values stock at purchase cost and lists everything at or
// below its reorder level.
func GetInventoryReport(db *gorm.DB) (*InventoryReport, error) {
	var report InventoryReport

	if err := db.Model(&models.Mobile{}).
		Where("status = ?", models.StatusInStock).
		Count(&report.MobilesInStock).Error; err != nil {
		return nil, err
	}
	err := db.Model(&models.Mobile{}).
		Where("status = ?", models.StatusInStock).
		Select("COALESCE(SUM(purchase_price), 0)").
		Scan(&report.MobilesValue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Accessory{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&report.AccessoryUnits).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Accessory{}).
		Select("COALESCE(SUM(purchase_price * quantity), 0)").
		Scan(&report.AccessoriesValue).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("quantity <= reorder_level").
		Order("quantity ASC").
		Find(&report.LowStock).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}
