package repository

import (
	"strings"

	"github.com/Tabish5858/inventory-managment-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductQuery carries the supported list filters. Ordering accepts a
// whitelisted column name, prefixed with "-" for descending.
type ProductQuery struct {
	Search   string
	Category *uuid.UUID
	LowStock *bool
	Ordering string
}

var productOrderings = map[string]string{
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(query ProductQuery) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindLowStock() ([]model.Product, error)
	Update(product *model.Product) error
	ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(query ProductQuery) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category")

	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(barcode) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if query.Category != nil {
		q = q.Where("category_id = ?", *query.Category)
	}
	if query.LowStock != nil {
		if *query.LowStock {
			q = q.Where("quantity <= low_stock_threshold")
		} else {
			q = q.Where("quantity > low_stock_threshold")
		}
	}
	q = q.Order(orderClause(query.Ordering, productOrderings, "created_at DESC"))

	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

// FindLowStock compares quantity against the per-product threshold in SQL,
// so the report stays consistent however large the table grows.
func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("quantity <= low_stock_threshold").
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// ApplyQuantityDelta menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi.
// The increment happens in-place in SQL, so concurrent ledger entries against
// the same product cannot lose updates.
func (r *productRepo) ApplyQuantityDelta(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// Delete removes the product together with its ledger history (cascade).
func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.Transaction{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

// orderClause resolves a Django-style ordering param ("-price") against a
// whitelist, falling back to the given default.
func orderClause(ordering string, allowed map[string]string, fallback string) string {
	desc := strings.HasPrefix(ordering, "-")
	col, ok := allowed[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
