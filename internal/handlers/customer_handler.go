package handlers

import (
	"net/http"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCustomers lists customers with search and pagination.
func GetCustomers(c *gin.Context) {
	query := database.DB.Model(&models.Customer{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}

	page, limit, offset := pageParams(c)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch customers"})
		return
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"customers":  customers,
			"pagination": paginate(total, page, limit),
		},
	})
}

// GetCustomer returns one customer together with their purchase history.
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid customer ID"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Customer not found"})
		return
	}

	var sales []models.Sale
	if err := database.DB.Preload("Items").
		Where("customer_id = ?", customer.ID).
		Order("sale_date DESC").
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch customer sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"customer": customer,
			"sales":    sales,
		},
	})
}

// CreateCustomer adds a customer record.
func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if err := customer.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	customer.ID = 0
	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": customer, "message": "Customer added successfully"})
}

// CustomerUpdate carries a partial update; nil means "leave unchanged".
type CustomerUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// UpdateCustomer edits a customer record.
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid customer ID"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Customer not found"})
		return
	}

	var input CustomerUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := customer.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := database.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer, "message": "Customer updated successfully"})
}

// DeleteCustomer removes a customer without sales history. Customers that
// appear on sale records stay, so the records keep their reference.
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid customer ID"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Customer not found"})
		return
	}

	var salesCount int64
	if err := database.DB.Model(&models.Sale{}).Where("customer_id = ?", customer.ID).Count(&salesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete customer"})
		return
	}
	if salesCount > 0 {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Cannot delete customer with existing sales records"})
		return
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer deleted successfully"})
}
