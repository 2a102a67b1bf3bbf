package handlers

import (
	"net/http"
	"os"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/utils"

	"github.com/gin-gonic/gin"
)

func backupDir() string {
	if dir := os.Getenv("BACKUP_DIR"); dir != "" {
		return dir
	}
	return "backups"
}

// CreateBackup copies the embedded database file aside. Only meaningful with
// the SQLite driver; MySQL installs have their own dump tooling.
func CreateBackup(c *gin.Context) {
	if driver := os.Getenv("DB_DRIVER"); driver != "" && driver != "sqlite" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File backups are only available with the SQLite driver"})
		return
	}

	info, err := utils.CreateBackup(database.SQLitePath(), backupDir())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create backup"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": info, "message": "Backup created successfully"})
}

// ListBackups returns existing backup files, newest first.
func ListBackups(c *gin.Context) {
	backups, err := utils.ListBackups(backupDir())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list backups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": backups})
}
