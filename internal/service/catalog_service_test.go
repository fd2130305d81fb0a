package service

import (
	"testing"

	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateProduct_DefaultThreshold(t *testing.T) {
	env := newTestEnv(t)

	product, err := env.catalog.CreateProduct(&model.ProductRequest{
		Name:  "Widget",
		SKU:   "SKU-1",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLowStockThreshold, product.LowStockThreshold)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "SKU-1", 5, 10)

	_, err := env.catalog.CreateProduct(&model.ProductRequest{
		Name: "Widget Copy",
		SKU:  "SKU-1",
	})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestProductRepo_DuplicateSKUTranslated(t *testing.T) {
	env := newTestEnv(t)
	repo := repository.NewProductRepo(env.db)

	require.NoError(t, repo.Create(&model.Product{Name: "Widget", SKU: "SKU-1"}))

	// The unique index is the guard of last resort; its violation must come
	// back as the translated sentinel, not a driver-specific error.
	err := repo.Create(&model.Product{Name: "Widget Copy", SKU: "SKU-1"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateProduct_DuplicateSKUSeededDirectly(t *testing.T) {
	env := newTestEnv(t)

	// Seed behind the service's back, the way a concurrent writer would.
	require.NoError(t, env.db.Create(&model.Product{Name: "Widget", SKU: "SKU-1"}).Error)

	_, err := env.catalog.CreateProduct(&model.ProductRequest{Name: "Widget Copy", SKU: "SKU-1"})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	bogus := uuid.New()

	_, err := env.catalog.CreateProduct(&model.ProductRequest{
		Name:     "Widget",
		SKU:      "SKU-1",
		Category: &bogus,
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateProduct_MissingName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateProduct(&model.ProductRequest{SKU: "SKU-1"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "required", vErr.Tag)
}

func TestUpdateProduct_DuplicateSKU(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "SKU-1", 5, 10)
	other := env.createProduct(t, "SKU-2", 5, 10)

	_, err := env.catalog.UpdateProduct(other.ID, &model.ProductRequest{
		Name: other.Name,
		SKU:  "SKU-1",
	})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestDeleteCategory_NullifiesProducts(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.catalog.CreateCategory(&model.CategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	product, err := env.catalog.CreateProduct(&model.ProductRequest{
		Name:     "Hammer",
		SKU:      "SKU-1",
		Category: &category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteCategory(category.ID))

	// The product survives with its category reference cleared.
	survivor, err := env.catalog.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.CategoryID)

	_, err = env.catalog.GetCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteProduct_CascadesTransactions(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "SKU-1", 10, 10)

	for i := 0; i < 3; i++ {
		_, _, err := env.ledger.RecordTransaction(&model.TransactionRequest{
			Product:  product.ID,
			Quantity: 1,
			Type:     model.TxPurchase,
		})
		require.NoError(t, err)
	}

	require.NoError(t, env.catalog.DeleteProduct(product.ID))

	var count int64
	require.NoError(t, env.db.Model(&model.Transaction{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err := env.catalog.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLowStockReport_Boundary(t *testing.T) {
	env := newTestEnv(t)
	atOrBelow1 := env.createProduct(t, "SKU-1", 5, 10)
	atOrBelow2 := env.createProduct(t, "SKU-2", 10, 10)
	env.createProduct(t, "SKU-3", 11, 10)

	products, err := env.catalog.GetLowStockProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)

	ids := []uuid.UUID{products[0].ID, products[1].ID}
	assert.Contains(t, ids, atOrBelow1.ID)
	assert.Contains(t, ids, atOrBelow2.ID)
}

func TestGetProducts_SearchAndOrdering(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateProduct(&model.ProductRequest{
		Name: "Claw Hammer", SKU: "HAM-1", Price: decimal.NewFromInt(12), Quantity: 3,
	})
	require.NoError(t, err)
	_, err = env.catalog.CreateProduct(&model.ProductRequest{
		Name: "Sledge Hammer", SKU: "HAM-2", Price: decimal.NewFromInt(30), Quantity: 8,
	})
	require.NoError(t, err)
	_, err = env.catalog.CreateProduct(&model.ProductRequest{
		Name: "Screwdriver", SKU: "SCR-1", Price: decimal.NewFromInt(7), Quantity: 1,
	})
	require.NoError(t, err)

	// Case-insensitive search across name/description/sku/barcode.
	found, err := env.catalog.GetProducts(repository.ProductQuery{Search: "hammer"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = env.catalog.GetProducts(repository.ProductQuery{Search: "scr-1"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	// Descending price ordering.
	ordered, err := env.catalog.GetProducts(repository.ProductQuery{Ordering: "-price"})
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, "HAM-2", ordered[0].SKU)
	assert.Equal(t, "SCR-1", ordered[2].SKU)
}

func TestGetProducts_CategoryAndLowStockFilters(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.catalog.CreateCategory(&model.CategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	_, err = env.catalog.CreateProduct(&model.ProductRequest{
		Name: "Hammer", SKU: "HAM-1", Category: &category.ID, Quantity: 3,
	})
	require.NoError(t, err)
	env.createProduct(t, "SKU-2", 50, 10)

	inCategory, err := env.catalog.GetProducts(repository.ProductQuery{Category: &category.ID})
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, "HAM-1", inCategory[0].SKU)
	// category_name comes back preloaded for the read schema
	require.NotNil(t, inCategory[0].Category)
	assert.Equal(t, "Tools", inCategory[0].Category.Name)

	low := true
	lowStock, err := env.catalog.GetProducts(repository.ProductQuery{LowStock: &low})
	require.NoError(t, err)
	require.Len(t, lowStock, 1)
	assert.Equal(t, "HAM-1", lowStock[0].SKU)
}

func TestGetCategories_Search(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateCategory(&model.CategoryRequest{Name: "Power Tools", Description: "drills and saws"})
	require.NoError(t, err)
	_, err = env.catalog.CreateCategory(&model.CategoryRequest{Name: "Fasteners"})
	require.NoError(t, err)

	found, err := env.catalog.GetCategories("tools")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Power Tools", found[0].Name)

	all, err := env.catalog.GetCategories("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
