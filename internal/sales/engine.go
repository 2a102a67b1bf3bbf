// Package sales is the transaction engine: one atomic unit of work per sale
// creation or cancellation. All stock checks, stock mutations and the sale
// record write happen inside a single db.Transaction closure, so any error on
// any line item rolls the whole call back.
package sales

import (
	"errors"
	"fmt"
	"time"

	"mobile-shop-erp/internal/ledger"
	"mobile-shop-erp/internal/models"

	"gorm.io/gorm"
)

// Cart-level error kinds. Item-level kinds live in the ledger package.
var (
	ErrEmptyCart       = errors.New("at least one item is required")
	ErrMalformedItem   = errors.New("each item must have itemType and itemId")
	ErrInvalidItemType = errors.New("invalid item type")
)

// LineItemInput is one requested cart entry. Quantity is ignored for mobiles
// (always 1) and defaults to 1 for accessories.
type LineItemInput struct {
	ItemType string `json:"itemType"`
	ItemID   uint   `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CreateInput carries everything needed to commit one sale.
type CreateInput struct {
	CustomerID    *uint
	Items         []LineItemInput
	PaymentMethod string
	SaleDate      time.Time
	Notes         string
	CreatedBy     uint
}

// Create validates and commits a sale: reserves every mobile, decrements every
// accessory, computes per-line and aggregate totals/profit and persists the
// header with its line items, all in one transaction. Items are processed in
// request order; the first failure aborts everything.
func Create(db *gorm.DB, in CreateInput) (*models.Sale, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	var saleID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var totalAmount, totalProfit float64
		var items []models.SaleItem

		for _, req := range in.Items {
			if req.ItemType == "" || req.ItemID == 0 {
				return ErrMalformedItem
			}

			switch req.ItemType {
			case models.ItemTypeMobile:
				mobile, err := ledger.ReserveMobile(tx, req.ItemID)
				if err != nil {
					return err
				}
				items = append(items, models.SaleItem{
					ItemType:   models.ItemTypeMobile,
					ItemID:     mobile.ID,
					ItemName:   mobile.Label(),
					Quantity:   1, // serialized units always sell one at a time
					UnitPrice:  mobile.SellingPrice,
					TotalPrice: mobile.SellingPrice,
					Profit:     mobile.Profit(),
				})
				totalAmount += mobile.SellingPrice
				totalProfit += mobile.Profit()

			case models.ItemTypeAccessory:
				qty := req.Quantity
				if qty <= 0 {
					qty = 1
				}
				accessory, err := ledger.DecrementAccessory(tx, req.ItemID, qty)
				if err != nil {
					return err
				}
				lineTotal := accessory.SellingPrice * float64(qty)
				lineProfit := accessory.UnitProfit() * float64(qty)
				items = append(items, models.SaleItem{
					ItemType:   models.ItemTypeAccessory,
					ItemID:     accessory.ID,
					ItemName:   accessory.Name,
					Quantity:   qty,
					UnitPrice:  accessory.SellingPrice,
					TotalPrice: lineTotal,
					Profit:     lineProfit,
				})
				totalAmount += lineTotal
				totalProfit += lineProfit

			default:
				return fmt.Errorf("%q: %w", req.ItemType, ErrInvalidItemType)
			}
		}

		sale := models.Sale{
			SaleDate:      saleDate,
			CustomerID:    in.CustomerID,
			TotalAmount:   totalAmount,
			Profit:        totalProfit,
			PaymentMethod: paymentMethod,
			CreatedBy:     in.CreatedBy,
			Notes:         in.Notes,
			Items:         items, // inserted together with the header
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write with associations resolved; not part of the transaction.
	var sale models.Sale
	if err := db.Preload("Items").Preload("Customer").Preload("Creator").
		First(&sale, saleID).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// Delete cancels a committed sale: every line item's stock effect is reversed,
// then the line items and the header are removed, all in one transaction.
// Fails with ledger.ErrNotFound when the sale (or a referenced inventory row)
// no longer exists, leaving everything untouched.
func Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Preload("Items").First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("sale with ID %d: %w", id, ledger.ErrNotFound)
			}
			return err
		}

		for _, item := range sale.Items {
			switch item.ItemType {
			case models.ItemTypeMobile:
				if err := ledger.ReleaseMobile(tx, item.ItemID); err != nil {
					return err
				}
			case models.ItemTypeAccessory:
				if err := ledger.IncrementAccessory(tx, item.ItemID, item.Quantity); err != nil {
					return err
				}
			}
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
}
