package handlers

import (
	"errors"
	"net/http"
	"time"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/ledger"
	"mobile-shop-erp/internal/models"
	"mobile-shop-erp/internal/sales"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSales lists sales with date-range/customer filters, newest first, with
// customer, creator and line items attached.
func GetSales(c *gin.Context) {
	query := database.DB.Model(&models.Sale{})

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid startDate"})
			return
		}
		query = query.Where("sale_date >= ?", start)
	}
	if endDate != "" {
		end, err := parseDate(endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid endDate"})
			return
		}
		query = query.Where("sale_date < ?", end.AddDate(0, 0, 1))
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	page, limit, offset := pageParams(c)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sales"})
		return
	}

	var saleList []models.Sale
	err := query.Preload("Customer").Preload("Creator").Preload("Items").
		Order("sale_date DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&saleList).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sales":      saleList,
			"pagination": paginate(total, page, limit),
		},
	})
}

// GetSale returns one sale with its associations.
func GetSale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sale ID"})
		return
	}

	var sale models.Sale
	err := database.DB.Preload("Customer").Preload("Creator").Preload("Items").
		First(&sale, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sale})
}

// CreateSaleRequest is the checkout payload.
type CreateSaleRequest struct {
	CustomerID    *uint                 `json:"customerId"`
	Items         []sales.LineItemInput `json:"items"`
	PaymentMethod string                `json:"paymentMethod"`
	SaleDate      string                `json:"saleDate"`
	Notes         string                `json:"notes"`
}

// CreateSale runs the whole cart through the transaction engine and returns
// the committed sale, or a classified error with nothing applied.
func CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if req.PaymentMethod != "" && !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payment method"})
		return
	}

	var saleDate time.Time
	if req.SaleDate != "" {
		parsed, err := parseDate(req.SaleDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid saleDate"})
			return
		}
		saleDate = parsed
	}

	userID := c.MustGet("userID").(uint)

	sale, err := sales.Create(database.DB, sales.CreateInput{
		CustomerID:    req.CustomerID,
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
		SaleDate:      saleDate,
		Notes:         req.Notes,
		CreatedBy:     userID,
	})
	if err != nil {
		status, msg := saleErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sale, "message": "Sale created successfully"})
}

// DeleteSale cancels a sale, restoring every stock effect. Admin only
// (enforced by the route group).
func DeleteSale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sale ID"})
		return
	}

	if err := sales.Delete(database.DB, id); err != nil {
		status, msg := saleErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sale deleted successfully and stock restored"})
}

// saleErrorStatus maps engine/ledger errors onto HTTP statuses. Anything
// unclassified is a storage failure.
func saleErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, sales.ErrEmptyCart),
		errors.Is(err, sales.ErrMalformedItem),
		errors.Is(err, sales.ErrInvalidItemType),
		errors.Is(err, ledger.ErrAlreadySold),
		errors.Is(err, ledger.ErrInsufficientStock):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to process sale"
	}
}
