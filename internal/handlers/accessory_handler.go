package handlers

import (
	"net/http"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAccessories lists accessories with category/lowStock/search filters.
func GetAccessories(c *gin.Context) {
	query := database.DB.Model(&models.Accessory{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("lowStock") == "true" {
		query = query.Where("quantity <= reorder_level")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR category LIKE ? OR brand LIKE ?", like, like, like)
	}

	page, limit, offset := pageParams(c)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch accessories"})
		return
	}

	var accessories []models.Accessory
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&accessories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch accessories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"accessories": accessories,
			"pagination":  paginate(total, page, limit),
		},
	})
}

// GetAccessory returns one accessory by id.
func GetAccessory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid accessory ID"})
		return
	}

	var accessory models.Accessory
	if err := database.DB.First(&accessory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Accessory not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": accessory})
}

// CreateAccessory adds a new stocked product.
func CreateAccessory(c *gin.Context) {
	var accessory models.Accessory
	if err := c.ShouldBindJSON(&accessory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := accessory.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	accessory.ID = 0
	if err := database.DB.Create(&accessory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create accessory"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": accessory, "message": "Accessory added successfully"})
}

// AccessoryUpdate carries a partial update; nil means "leave unchanged".
// Quantity edits here are manual restocks/corrections - sales go through the
// transaction engine.
type AccessoryUpdate struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Brand         *string  `json:"brand"`
	Quantity      *int     `json:"quantity"`
	PurchasePrice *float64 `json:"purchase_price"`
	SellingPrice  *float64 `json:"selling_price"`
	ReorderLevel  *int     `json:"reorder_level"`
	Supplier      *string  `json:"supplier"`
	Description   *string  `json:"description"`
}

// UpdateAccessory edits an accessory.
func UpdateAccessory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid accessory ID"})
		return
	}

	var accessory models.Accessory
	if err := database.DB.First(&accessory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Accessory not found"})
		return
	}

	var input AccessoryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if input.Name != nil {
		accessory.Name = *input.Name
	}
	if input.Category != nil {
		accessory.Category = *input.Category
	}
	if input.Brand != nil {
		accessory.Brand = *input.Brand
	}
	if input.Quantity != nil {
		accessory.Quantity = *input.Quantity
	}
	if input.PurchasePrice != nil {
		accessory.PurchasePrice = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		accessory.SellingPrice = *input.SellingPrice
	}
	if input.ReorderLevel != nil {
		accessory.ReorderLevel = *input.ReorderLevel
	}
	if input.Supplier != nil {
		accessory.Supplier = *input.Supplier
	}
	if input.Description != nil {
		accessory.Description = *input.Description
	}

	if err := accessory.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := database.DB.Save(&accessory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update accessory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": accessory, "message": "Accessory updated successfully"})
}

// DeleteAccessory removes a product from the catalogue. Past sale line items
// keep their snapshot of its name.
func DeleteAccessory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid accessory ID"})
		return
	}

	var accessory models.Accessory
	if err := database.DB.First(&accessory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Accessory not found"})
		return
	}

	if err := database.DB.Delete(&accessory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete accessory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Accessory deleted successfully"})
}

// GetLowStockAccessories lists everything at or below its reorder level.
func GetLowStockAccessories(c *gin.Context) {
	var accessories []models.Accessory
	err := database.DB.Where("quantity <= reorder_level").
		Order("quantity ASC").
		Find(&accessories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch low stock accessories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": accessories})
}

// GetCategories returns the distinct accessory categories.
func GetCategories(c *gin.Context) {
	var categories []string
	err := database.DB.Model(&models.Accessory{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}
