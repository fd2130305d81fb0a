package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"
	"github.com/Tabish5858/inventory-managment-system/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache name per test so the pool's connections all see the
	// same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Single connection: the shared-cache in-memory database returns lock
	// errors when concurrent writers arrive on separate connections.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Transaction{}))
	return db
}

// nextBroadcast reads one stock event off a hub that has no running fan-out
// loop, so tests can observe exactly what the services publish.
func nextBroadcast(t *testing.T, hub *ws.Hub) map[string]interface{} {
	t.Helper()

	select {
	case msg := <-hub.Broadcast:
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &payload))
		return payload
	case <-time.After(2 * time.Second):
		t.Fatal("expected a stock event broadcast")
		return nil
	}
}

type testEnv struct {
	db      *gorm.DB
	catalog CatalogService
	ledger  InventoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	hub := ws.NewHub()
	go hub.Run()

	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	return &testEnv{
		db:      db,
		catalog: NewCatalogService(categoryRepo, productRepo, db, hub),
		ledger:  NewInventoryService(productRepo, txRepo, db, hub),
	}
}

func (e *testEnv) createProduct(t *testing.T, sku string, quantity, threshold int) *model.Product {
	t.Helper()

	product, err := e.catalog.CreateProduct(&model.ProductRequest{
		Name:              "Product " + sku,
		SKU:               sku,
		Price:             decimal.NewFromFloat(9.99),
		CostPrice:         decimal.NewFromFloat(5.50),
		Quantity:          quantity,
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) productQuantity(t *testing.T, id uuid.UUID) int {
	t.Helper()

	product, err := e.catalog.GetProduct(id)
	require.NoError(t, err)
	return product.Quantity
}
