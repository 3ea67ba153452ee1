package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	"github.com/sukkarlab/sweetshop-backend/pkg/types"
)

func openOrdersDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			secondary_phone TEXT,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			delivery_fee NUMERIC NOT NULL DEFAULT 0,
			total_amount NUMERIC NOT NULL,
			payment_method TEXT NOT NULL,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL,
			product_id INTEGER,
			product_name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL,
			base_price NUMERIC NOT NULL,
			unit_price NUMERIC NOT NULL,
			selected_options TEXT,
			notes TEXT,
			created_at DATETIME
		)`,
	} {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// failingItemsRepo delegates everything but makes the item insert blow up
// inside the transaction.
type failingItemsRepo struct {
	Repository
}

func (f failingItemsRepo) WithTx(tx *gorm.DB) Repository {
	return failingItemsRepo{f.Repository.WithTx(tx)}
}

func (f failingItemsRepo) CreateOrderItems(context.Context, []models.OrderItem) error {
	return errors.New("insert failed")
}

func sampleOrder() *models.Order {
	return &models.Order{
		CustomerName:  "سارة خليل",
		Phone:         "0944123456",
		Address:       "شارع الحمرا 12",
		City:          "دمشق",
		DeliveryFee:   money("5"),
		TotalAmount:   money("175"),
		PaymentMethod: "cash",
		Status:        enums.OrderStatusPending,
	}
}

func sampleItems(orderID int64) []models.OrderItem {
	productA, productB := int64(1), int64(2)
	return []models.OrderItem{
		{
			OrderID:     orderID,
			ProductID:   &productA,
			ProductName: "بقلاوة بالفستق",
			Category:    "بقلاوة",
			Quantity:    2,
			BasePrice:   money("45"),
			UnitPrice:   money("60"),
			SelectedOptions: types.SelectedOptions{
				{ID: 101, Name: "كبير", Price: money("15")},
			},
		},
		{
			OrderID:     orderID,
			ProductID:   &productB,
			ProductName: "كنافة",
			Quantity:    1,
			BasePrice:   money("50"),
			UnitPrice:   money("50"),
		},
	}
}

func TestRepositoryCreateOrderWithItems(t *testing.T) {
	gdb := openOrdersDB(t)
	repo := NewRepository(gdb)
	runner := gormTxRunner{db: gdb}

	order := sampleOrder()
	err := runner.WithTx(context.Background(), func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.CreateOrder(context.Background(), order); err != nil {
			return err
		}
		return txRepo.CreateOrderItems(context.Background(), sampleItems(order.ID))
	})
	require.NoError(t, err)

	loaded, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	require.True(t, loaded.TotalAmount.Equal(money("175")))
	require.Equal(t, enums.OrderStatusPending, loaded.Status)

	// The jsonb snapshot survives the round trip.
	require.Len(t, loaded.Items[0].SelectedOptions, 1)
	require.Equal(t, "كبير", loaded.Items[0].SelectedOptions[0].Name)
	require.True(t, loaded.Items[0].SelectedOptions[0].Price.Equal(money("15")))
}

func TestRepositoryRollbackLeavesNoRows(t *testing.T) {
	gdb := openOrdersDB(t)
	repo := failingItemsRepo{NewRepository(gdb)}
	runner := gormTxRunner{db: gdb}

	order := sampleOrder()
	err := runner.WithTx(context.Background(), func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.CreateOrder(context.Background(), order); err != nil {
			return err
		}
		return txRepo.CreateOrderItems(context.Background(), sampleItems(order.ID))
	})
	require.Error(t, err)

	var orderCount, itemCount int64
	require.NoError(t, gdb.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, gdb.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, orderCount)
	require.Zero(t, itemCount)
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	gdb := openOrdersDB(t)
	repo := NewRepository(gdb)

	first := sampleOrder()
	require.NoError(t, repo.CreateOrder(context.Background(), first))
	second := sampleOrder()
	second.Status = enums.OrderStatusConfirmed
	require.NoError(t, repo.CreateOrder(context.Background(), second))

	confirmed, err := repo.List(context.Background(), ListFilter{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	require.Equal(t, second.ID, confirmed[0].ID)

	all, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	gdb := openOrdersDB(t)
	repo := NewRepository(gdb)

	order := sampleOrder()
	require.NoError(t, repo.CreateOrder(context.Background(), order))
	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPreparing))

	loaded, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPreparing, loaded.Status)
}
