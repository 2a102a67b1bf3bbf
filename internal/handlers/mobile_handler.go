package handlers

import (
	"net/http"
	"time"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/models"
	"mobile-shop-erp/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMobiles lists phones with status/brand/search filters and pagination.
func GetMobiles(c *gin.Context) {
	query := database.DB.Model(&models.Mobile{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("brand LIKE ? OR model LIKE ? OR imei LIKE ?", like, like, like)
	}

	page, limit, offset := pageParams(c)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch mobiles"})
		return
	}

	var mobiles []models.Mobile
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&mobiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch mobiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"mobiles":    mobiles,
			"pagination": paginate(total, page, limit),
		},
	})
}

// GetMobile returns one phone by id.
func GetMobile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid mobile ID"})
		return
	}

	var mobile models.Mobile
	if err := database.DB.First(&mobile, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Mobile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mobile})
}

// GetMobileByIMEI looks a phone up by its device identifier.
func GetMobileByIMEI(c *gin.Context) {
	imei := utils.CleanIMEI(c.Param("imei"))

	var mobile models.Mobile
	if err := database.DB.Where("imei = ?", imei).First(&mobile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Mobile with this IMEI not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mobile})
}

// CreateMobile registers a new phone in stock. The IMEI is cleaned, Luhn
// checked and must be unique.
func CreateMobile(c *gin.Context) {
	var mobile models.Mobile
	if err := c.ShouldBindJSON(&mobile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	mobile.IMEI = utils.CleanIMEI(mobile.IMEI)
	if err := utils.ValidateIMEI(mobile.IMEI); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := mobile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var duplicates int64
	database.DB.Model(&models.Mobile{}).Where("imei = ?", mobile.IMEI).Count(&duplicates)
	if duplicates > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "This IMEI already exists in the system"})
		return
	}

	mobile.ID = 0
	mobile.Status = models.StatusInStock // new units always start in stock
	if mobile.Condition == "" {
		mobile.Condition = "new"
	}
	if mobile.PurchaseDate.IsZero() {
		mobile.PurchaseDate = time.Now()
	}

	if err := database.DB.Create(&mobile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create mobile"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": mobile, "message": "Mobile added successfully"})
}

// MobileUpdate carries a partial update; nil means "leave unchanged".
// Status is deliberately absent - only the sale engine moves units between
// in_stock and sold.
type MobileUpdate struct {
	Brand         *string    `json:"brand"`
	Model         *string    `json:"model"`
	IMEI          *string    `json:"imei"`
	PurchasePrice *float64   `json:"purchase_price"`
	SellingPrice  *float64   `json:"selling_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	Supplier      *string    `json:"supplier"`
	Color         *string    `json:"color"`
	Storage       *string    `json:"storage"`
	Condition     *string    `json:"condition"`
	Notes         *string    `json:"notes"`
}

// UpdateMobile edits a phone. Sold units may only be touched by an admin.
func UpdateMobile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid mobile ID"})
		return
	}

	var mobile models.Mobile
	if err := database.DB.First(&mobile, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Mobile not found"})
		return
	}

	if mobile.Status == models.StatusSold && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Cannot update sold mobiles"})
		return
	}

	var input MobileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if input.Brand != nil {
		mobile.Brand = *input.Brand
	}
	if input.Model != nil {
		mobile.Model = *input.Model
	}
	if input.IMEI != nil {
		imei := utils.CleanIMEI(*input.IMEI)
		if err := utils.ValidateIMEI(imei); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		var duplicates int64
		database.DB.Model(&models.Mobile{}).Where("imei = ? AND id <> ?", imei, mobile.ID).Count(&duplicates)
		if duplicates > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "This IMEI already exists in the system"})
			return
		}
		mobile.IMEI = imei
	}
	if input.PurchasePrice != nil {
		mobile.PurchasePrice = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		mobile.SellingPrice = *input.SellingPrice
	}
	if input.PurchaseDate != nil {
		mobile.PurchaseDate = *input.PurchaseDate
	}
	if input.Supplier != nil {
		mobile.Supplier = *input.Supplier
	}
	if input.Color != nil {
		mobile.Color = *input.Color
	}
	if input.Storage != nil {
		mobile.Storage = *input.Storage
	}
	if input.Condition != nil {
		mobile.Condition = *input.Condition
	}
	if input.Notes != nil {
		mobile.Notes = *input.Notes
	}

	if err := mobile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := database.DB.Save(&mobile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update mobile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mobile, "message": "Mobile updated successfully"})
}

// DeleteMobile removes a phone that is still in stock. Sold units stay -
// deleting them would orphan sale records.
func DeleteMobile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid mobile ID"})
		return
	}

	var mobile models.Mobile
	if err := database.DB.First(&mobile, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Mobile not found"})
		return
	}

	if mobile.Status == models.StatusSold {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Cannot delete sold mobiles. This would break sale records."})
		return
	}

	if err := database.DB.Delete(&mobile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete mobile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mobile deleted successfully"})
}

// GetBrands returns the distinct brand names for the filter dropdown.
func GetBrands(c *gin.Context) {
	var brands []string
	err := database.DB.Model(&models.Mobile{}).
		Distinct("brand").
		Where("brand <> ''").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": brands})
}
