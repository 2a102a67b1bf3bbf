package models

import (
	"time"
)

// Mobile lifecycle states
const (
	StatusInStock = "in_stock"
	StatusSold    = "sold"
)

// Sale line item type tags (polymorphic reference: item_type + item_id)
const (
	ItemTypeMobile    = "mobile"
	ItemTypeAccessory = "accessory"
)

// PaymentMethods lists the accepted values for Sale.PaymentMethod.
var PaymentMethods = []string{"cash", "card", "bank_transfer", "other"}

// User - Admin and staff accounts
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50" json:"username"`
	Password  string    `gorm:"size:255" json:"-"` // Bcrypt hash, never returned in JSON
	FullName  string    `gorm:"size:100" json:"full_name"`
	Role      string    `gorm:"size:20;default:staff" json:"role"` // 'admin' or 'staff'
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mobile - A phone tracked one-by-one with a unique IMEI
type Mobile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Brand         string    `gorm:"size:50;index:idx_mobiles_brand_model" json:"brand" validate:"required"`
	Model         string    `gorm:"size:100;index:idx_mobiles_brand_model" json:"model" validate:"required"`
	IMEI          string    `gorm:"column:imei;size:15;uniqueIndex" json:"imei" validate:"required"`
	PurchasePrice float64   `json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64   `json:"selling_price" validate:"gte=0,gtefield=PurchasePrice"`
	PurchaseDate  time.Time `json:"purchase_date"`
	Status        string    `gorm:"size:20;default:in_stock;index" json:"status" validate:"omitempty,oneof=in_stock sold"`
	Supplier      string    `gorm:"size:100" json:"supplier"`
	Color         string    `gorm:"size:50" json:"color"`
	Storage       string    `gorm:"size:20" json:"storage"` // e.g. 64GB, 128GB
	Condition     string    `gorm:"size:20;default:new" json:"condition" validate:"omitempty,oneof=new used refurbished"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Profit is the margin on this unit at the current prices.
func (m *Mobile) Profit() float64 {
	return m.SellingPrice - m.PurchasePrice
}

// Label is the denormalized display name captured on sale line items.
func (m *Mobile) Label() string {
	return m.Brand + " " + m.Model + " (IMEI: " + m.IMEI + ")"
}

// Accessory - Fungible stock tracked by count (chargers, covers, cables...)
type Accessory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100" json:"name" validate:"required"`
	Category      string    `gorm:"size:50;index" json:"category" validate:"required"`
	Brand         string    `gorm:"size:50" json:"brand"`
	Quantity      int       `gorm:"default:0;index" json:"quantity" validate:"gte=0"`
	PurchasePrice float64   `json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64   `json:"selling_price" validate:"gte=0,gtefield=PurchasePrice"`
	ReorderLevel  int       `gorm:"default:5" json:"reorder_level" validate:"gte=0"`
	Supplier      string    `gorm:"size:100" json:"supplier"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsLowStock reports whether quantity has fallen to the reorder level.
func (a *Accessory) IsLowStock() bool {
	return a.Quantity <= a.ReorderLevel
}

// UnitProfit is the margin on one unit at the current prices.
func (a *Accessory) UnitProfit() float64 {
	return a.SellingPrice - a.PurchasePrice
}

// StockValue is the purchase cost of everything currently on hand.
func (a *Accessory) StockValue() float64 {
	return a.PurchasePrice * float64(a.Quantity)
}

// Customer - Kept for warranty tracking and sale records
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;index" json:"name" validate:"required"`
	Phone     string    `gorm:"size:20;index" json:"phone" validate:"required,phone"`
	Email     string    `gorm:"size:100" json:"email" validate:"omitempty,email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sale - The transaction header. Immutable once committed, except full deletion.
type Sale struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SaleDate      time.Time  `gorm:"index" json:"sale_date"`
	CustomerID    *uint      `gorm:"index" json:"customer_id"`
	Customer      *Customer  `json:"customer,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	Profit        float64    `json:"profit"`
	PaymentMethod string     `gorm:"size:20;default:cash" json:"payment_method"`
	CreatedBy     uint       `gorm:"index" json:"created_by"`
	Creator       *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Notes         string     `json:"notes"`
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SaleItem - One line in a sale. ItemType+ItemID is a polymorphic reference to
// either a Mobile or an Accessory (resolved manually, no shared base table).
// ItemName is a snapshot so the record survives later renaming or deletion of
// the source item.
type SaleItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SaleID     uint      `gorm:"index" json:"sale_id"`
	ItemType   string    `gorm:"size:20;index:idx_sale_items_item" json:"item_type"`
	ItemID     uint      `gorm:"index:idx_sale_items_item" json:"item_id"`
	ItemName   string    `gorm:"size:200" json:"item_name"`
	Quantity   int       `gorm:"default:1" json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	Profit     float64   `json:"profit"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
