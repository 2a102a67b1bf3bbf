package sales

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mobile-shop-erp/internal/database"
	"mobile-shop-erp/internal/ledger"
	"mobile-shop-erp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sales_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedMobile(t *testing.T, db *gorm.DB, imei string, purchase, selling float64) *models.Mobile {
	t.Helper()
	m := &models.Mobile{
		Brand:         "Samsung",
		Model:         "Galaxy A54",
		IMEI:          imei,
		PurchasePrice: purchase,
		SellingPrice:  selling,
		Status:        models.StatusInStock,
		Condition:     "new",
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedAccessory(t *testing.T, db *gorm.DB, name string, qty int, purchase, selling float64) *models.Accessory {
	t.Helper()
	a := &models.Accessory{
		Name:          name,
		Category:      "Charger",
		Quantity:      qty,
		PurchasePrice: purchase,
		SellingPrice:  selling,
		ReorderLevel:  5,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestCreateSaleAccessoryComputesLineAndStock(t *testing.T) {
	db := newTestDB(t)
	acc := seedAccessory(t, db, "USB-C Charger", 10, 100, 150)

	sale, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 3}},
		CreatedBy: 1,
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)

	line := sale.Items[0]
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 150.0, line.UnitPrice)
	assert.Equal(t, 450.0, line.TotalPrice)
	assert.Equal(t, 150.0, line.Profit)
	assert.Equal(t, "USB-C Charger", line.ItemName)
	assert.Equal(t, 450.0, sale.TotalAmount)
	assert.Equal(t, 150.0, sale.Profit)

	var reloaded models.Accessory
	require.NoError(t, db.First(&reloaded, acc.ID).Error)
	assert.Equal(t, 7, reloaded.Quantity)
}

func TestCreateSaleMobileMarksSold(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)

	sale, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeMobile, ItemID: mob.ID}},
		CreatedBy: 1,
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)

	line := sale.Items[0]
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 650.0, line.TotalPrice)
	assert.Equal(t, 150.0, line.Profit)
	assert.Contains(t, line.ItemName, "490154203237518")

	var reloaded models.Mobile
	require.NoError(t, db.First(&reloaded, mob.ID).Error)
	assert.Equal(t, models.StatusSold, reloaded.Status)
}

func TestCreateSaleForcesQuantityOneForMobiles(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)

	sale, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeMobile, ItemID: mob.ID, Quantity: 4}},
		CreatedBy: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sale.Items[0].Quantity)
	assert.Equal(t, 650.0, sale.TotalAmount)
}

func TestCreateSaleMixedCartTotals(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)
	acc := seedAccessory(t, db, "Screen Protector", 20, 2, 5)

	sale, err := Create(db, CreateInput{
		Items: []LineItemInput{
			{ItemType: models.ItemTypeMobile, ItemID: mob.ID},
			{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 2},
		},
		PaymentMethod: "card",
		CreatedBy:     1,
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)

	// Header totals must equal the sum over line items.
	var sumTotal, sumProfit float64
	for _, item := range sale.Items {
		sumTotal += item.TotalPrice
		sumProfit += item.Profit
	}
	assert.Equal(t, sumTotal, sale.TotalAmount)
	assert.Equal(t, sumProfit, sale.Profit)
	assert.Equal(t, 660.0, sale.TotalAmount)
	assert.Equal(t, 156.0, sale.Profit)
	assert.Equal(t, "card", sale.PaymentMethod)
}

func TestCreateSaleEmptyCart(t *testing.T) {
	db := newTestDB(t)
	_, err := Create(db, CreateInput{CreatedBy: 1})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateSaleMalformedItem(t *testing.T) {
	db := newTestDB(t)

	_, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeMobile}},
		CreatedBy: 1,
	})
	assert.ErrorIs(t, err, ErrMalformedItem)

	_, err = Create(db, CreateInput{
		Items:     []LineItemInput{{ItemID: 1}},
		CreatedBy: 1,
	})
	assert.ErrorIs(t, err, ErrMalformedItem)
}

func TestCreateSaleInvalidItemType(t *testing.T) {
	db := newTestDB(t)
	_, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: "giftcard", ItemID: 1}},
		CreatedBy: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidItemType)
}

func TestCreateSaleInsufficientStockLeavesQuantity(t *testing.T) {
	db := newTestDB(t)
	acc := seedAccessory(t, db, "Handsfree", 2, 10, 20)

	_, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 5}},
		CreatedBy: 1,
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available 2")
	assert.Contains(t, err.Error(), "requested 5")

	var reloaded models.Accessory
	require.NoError(t, db.First(&reloaded, acc.ID).Error)
	assert.Equal(t, 2, reloaded.Quantity)
}

func TestCreateSaleRollsBackEarlierItemsOnFailure(t *testing.T) {
	db := newTestDB(t)
	acc := seedAccessory(t, db, "Cover", 10, 5, 8)
	soldMob := seedMobile(t, db, "490154203237518", 300, 400)
	require.NoError(t, db.Model(soldMob).Update("status", models.StatusSold).Error)

	// The accessory decrement succeeds first, then the mobile fails;
	// everything must be rolled back.
	_, err := Create(db, CreateInput{
		Items: []LineItemInput{
			{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 4},
			{ItemType: models.ItemTypeMobile, ItemID: soldMob.ID},
		},
		CreatedBy: 1,
	})
	require.ErrorIs(t, err, ledger.ErrAlreadySold)

	var reloaded models.Accessory
	require.NoError(t, db.First(&reloaded, acc.ID).Error)
	assert.Equal(t, 10, reloaded.Quantity)

	var saleCount, itemCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, db.Model(&models.SaleItem{}).Count(&itemCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, itemCount)
}

func TestCreateSaleSameMobileTwiceFailsSecondTime(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)

	items := []LineItemInput{{ItemType: models.ItemTypeMobile, ItemID: mob.ID}}
	_, err := Create(db, CreateInput{Items: items, CreatedBy: 1})
	require.NoError(t, err)

	_, err = Create(db, CreateInput{Items: items, CreatedBy: 1})
	assert.ErrorIs(t, err, ledger.ErrAlreadySold)
}

func TestCreateSaleUnknownItemsNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeMobile, ItemID: 999}},
		CreatedBy: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeAccessory, ItemID: 999, Quantity: 1}},
		CreatedBy: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCreateSaleAttachesCustomer(t *testing.T) {
	db := newTestDB(t)
	customer := models.Customer{Name: "Rahim Uddin", Phone: "01712-345678"}
	require.NoError(t, db.Create(&customer).Error)
	acc := seedAccessory(t, db, "Cable", 5, 3, 6)

	sale, err := Create(db, CreateInput{
		CustomerID: &customer.ID,
		Items:      []LineItemInput{{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 1}},
		CreatedBy:  1,
	})
	require.NoError(t, err)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Rahim Uddin", sale.Customer.Name)
}

func TestDeleteSaleRestoresInventory(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)
	acc := seedAccessory(t, db, "Charger", 10, 100, 150)

	sale, err := Create(db, CreateInput{
		Items: []LineItemInput{
			{ItemType: models.ItemTypeMobile, ItemID: mob.ID},
			{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 3},
		},
		CreatedBy: 1,
	})
	require.NoError(t, err)

	require.NoError(t, Delete(db, sale.ID))

	var reloadedMob models.Mobile
	require.NoError(t, db.First(&reloadedMob, mob.ID).Error)
	assert.Equal(t, models.StatusInStock, reloadedMob.Status)

	var reloadedAcc models.Accessory
	require.NoError(t, db.First(&reloadedAcc, acc.ID).Error)
	assert.Equal(t, 10, reloadedAcc.Quantity)

	var saleCount, itemCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, db.Model(&models.SaleItem{}).Count(&itemCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, itemCount)
}

func TestDeleteSaleNotFound(t *testing.T) {
	db := newTestDB(t)
	assert.ErrorIs(t, Delete(db, 42), ledger.ErrNotFound)
}

func TestDeleteSaleFailsLoudlyWhenAccessoryGone(t *testing.T) {
	db := newTestDB(t)
	acc := seedAccessory(t, db, "Cover", 10, 5, 8)

	sale, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 2}},
		CreatedBy: 1,
	})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Accessory{}, acc.ID).Error)

	// The restoration has nowhere to go, so the cancellation must fail and
	// leave the sale record intact.
	err = Delete(db, sale.ID)
	require.ErrorIs(t, err, ledger.ErrNotFound)

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Equal(t, int64(1), saleCount)
}

func TestDeleteSaleFailsLoudlyWhenMobileGone(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)

	sale, err := Create(db, CreateInput{
		Items:     []LineItemInput{{ItemType: models.ItemTypeMobile, ItemID: mob.ID}},
		CreatedBy: 1,
	})
	require.NoError(t, err)

	// Sold mobiles cannot be deleted through the API; this simulates direct
	// database damage. The cancellation must still refuse to half-apply.
	require.NoError(t, db.Delete(&models.Mobile{}, mob.ID).Error)

	err = Delete(db, sale.ID)
	require.ErrorIs(t, err, ledger.ErrNotFound)

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Equal(t, int64(1), saleCount)
}

func TestRoundTripLeavesLedgerUntouched(t *testing.T) {
	db := newTestDB(t)
	mob := seedMobile(t, db, "490154203237518", 500, 650)
	acc := seedAccessory(t, db, "Charger", 10, 100, 150)

	for i := 0; i < 3; i++ {
		sale, err := Create(db, CreateInput{
			Items: []LineItemInput{
				{ItemType: models.ItemTypeMobile, ItemID: mob.ID},
				{ItemType: models.ItemTypeAccessory, ItemID: acc.ID, Quantity: 2},
			},
			CreatedBy: 1,
		})
		require.NoError(t, err)
		require.NoError(t, Delete(db, sale.ID))
	}

	var reloadedMob models.Mobile
	require.NoError(t, db.First(&reloadedMob, mob.ID).Error)
	assert.Equal(t, models.StatusInStock, reloadedMob.Status)

	var reloadedAcc models.Accessory
	require.NoError(t, db.First(&reloadedAcc, acc.ID).Error)
	assert.Equal(t, 10, reloadedAcc.Quantity)
}
