package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"mobile-shop-erp/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DefaultSQLitePath is where the embedded database lives unless DB_PATH says otherwise.
const DefaultSQLitePath = "database/erp.db"

// Connect opens the store (SQLite by default, MySQL via DB_DRIVER=mysql),
// retrying a few times so a slow MySQL container doesn't kill the process,
// then syncs the schema.
func Connect() {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}

	var err error
	for i := 0; i < 5; i++ {
		DB, err = open(driver)
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	log.Printf("✅ Connected to %s database", driver)

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}
	log.Println("✅ Database schema synced")
}

func open(driver string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch driver {
	case "sqlite":
		path := SQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		return gorm.Open(sqlite.Open(path), cfg)
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("DB_DRIVER=mysql requires DB_DSN to be set")
		}
		return gorm.Open(mysql.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// SQLitePath resolves the embedded database file location.
func SQLitePath() string {
	if path := os.Getenv("DB_PATH"); path != "" {
		return path
	}
	return DefaultSQLitePath
}

// Migrate creates or updates all tables. Exposed so tests can run it against
// their own in-memory handles.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Mobile{},
		&models.Accessory{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleItem{},
	)
}
