// Package ledger holds the stock-state invariants: a mobile is sold at most
// once, an accessory count never goes below zero. Every operation takes the
// enclosing transaction handle so the caller decides the commit/rollback
// boundary.
package ledger

import (
	"errors"
	"fmt"

	"mobile-shop-erp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate row-locks on MySQL. SQLite has a single writer per database,
// so the transaction itself already serializes these reads against other writers.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// ReserveMobile transitions an in-stock mobile to sold and returns it with its
// price snapshot. Fails with ErrNotFound or ErrAlreadySold.
func ReserveMobile(tx *gorm.DB, id uint) (*models.Mobile, error) {
	var mobile models.Mobile
	if err := lockForUpdate(tx).First(&mobile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mobile with ID %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if mobile.Status == models.StatusSold {
		return nil, fmt.Errorf("mobile %s: %w", mobile.Label(), ErrAlreadySold)
	}

	if err := tx.Model(&mobile).Update("status", models.StatusSold).Error; err != nil {
		return nil, err
	}
	mobile.Status = models.StatusSold
	return &mobile, nil
}

// ReleaseMobile puts a sold mobile back in stock when a sale is cancelled.
// If the mobile has been deleted since the sale, this fails with ErrNotFound
// and rolls the cancellation back rather than silently losing the restoration.
func ReleaseMobile(tx *gorm.DB, id uint) error {
	var mobile models.Mobile
	if err := lockForUpdate(tx).First(&mobile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mobile with ID %d: %w", id, ErrNotFound)
		}
		return err
	}
	return tx.Model(&mobile).Update("status", models.StatusInStock).Error
}

// DecrementAccessory subtracts amount from stock. Fails with ErrNotFound or,
// when the on-hand count is short, ErrInsufficientStock - never clamps.
func DecrementAccessory(tx *gorm.DB, id uint, amount int) (*models.Accessory, error) {
	var accessory models.Accessory
	if err := lockForUpdate(tx).First(&accessory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("accessory with ID %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if accessory.Quantity < amount {
		return nil, fmt.Errorf("%s: available %d, requested %d: %w",
			accessory.Name, accessory.Quantity, amount, ErrInsufficientStock)
	}

	newQty := accessory.Quantity - amount
	if err := tx.Model(&accessory).Update("quantity", newQty).Error; err != nil {
		return nil, err
	}
	accessory.Quantity = newQty
	return &accessory, nil
}

// IncrementAccessory restores amount to stock when a sale is cancelled.
// Fails with ErrNotFound if the accessory has been deleted since the sale.
func IncrementAccessory(tx *gorm.DB, id uint, amount int) error {
	var accessory models.Accessory
	if err := lockForUpdate(tx).First(&accessory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("accessory with ID %d: %w", id, ErrNotFound)
		}
		return err
	}
	return tx.Model(&accessory).Update("quantity", accessory.Quantity+amount).Error
}
