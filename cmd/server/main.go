package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/handlers"
	"mobile-shop-erp/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	if err := database.SeedAdmin(database.DB); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	r := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173" // Vite dev server
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Mobile Shop ERP API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":        "/api/auth",
				"mobiles":     "/api/mobiles",
				"accessories": "/api/accessories",
				"customers":   "/api/customers",
				"sales":       "/api/sales",
				"reports":     "/api/reports",
			},
		})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })

	r.POST("/api/auth/login", handlers.Login)

	// Feature flag: self-registration stays closed unless the .env opens it.
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/api/auth/register", handlers.Register)
		log.Println("⚠️  Registration route is OPEN. Disable this in production!")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/auth/me", handlers.Me)
		api.POST("/auth/change-password", handlers.ChangePassword)

		api.GET("/mobiles", handlers.GetMobiles)
		api.GET("/mobiles/:id", handlers.GetMobile)
		api.GET("/mobiles/imei/:imei", handlers.GetMobileByIMEI)
		api.GET("/mobiles/brands/list", handlers.GetBrands)
		api.POST("/mobiles", handlers.CreateMobile)
		api.PUT("/mobiles/:id", handlers.UpdateMobile)

		api.GET("/accessories", handlers.GetAccessories)
		api.GET("/accessories/:id", handlers.GetAccessory)
		api.GET("/accessories/low-stock/list", handlers.GetLowStockAccessories)
		api.GET("/accessories/categories/list", handlers.GetCategories)
		api.POST("/accessories", handlers.CreateAccessory)
		api.PUT("/accessories/:id", handlers.UpdateAccessory)

		api.GET("/customers", handlers.GetCustomers)
		api.GET("/customers/:id", handlers.GetCustomer)
		api.POST("/customers", handlers.CreateCustomer)
		api.PUT("/customers/:id", handlers.UpdateCustomer)

		api.GET("/sales", handlers.GetSales)
		api.GET("/sales/:id", handlers.GetSale)
		api.POST("/sales", handlers.CreateSale)

		api.GET("/reports/dashboard", handlers.GetDashboard)
		api.GET("/reports/sales", handlers.GetSalesReport)
		api.GET("/reports/sales/export", handlers.ExportSalesReport)
		api.GET("/reports/profit", handlers.GetProfitReport)
		api.GET("/reports/inventory", handlers.GetInventoryReport)

		// Destructive operations need the admin role.
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.DELETE("/mobiles/:id", handlers.DeleteMobile)
			admin.DELETE("/accessories/:id", handlers.DeleteAccessory)
			admin.DELETE("/customers/:id", handlers.DeleteCustomer)
			admin.DELETE("/sales/:id", handlers.DeleteSale)
			admin.POST("/system/backup", handlers.CreateBackup)
			admin.GET("/system/backups", handlers.ListBackups)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Mobile Shop ERP listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
