package repository

import (
	"strings"

	"github.com/Tabish5858/inventory-managment-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionQuery carries the supported list filters for ledger entries.
type TransactionQuery struct {
	Product  *uuid.UUID
	Type     string
	Search   string
	Ordering string
}

// Columns are qualified because the search filter joins products.
var transactionOrderings = map[string]string{
	"transaction_date": "transactions.transaction_date",
	"quantity":         "transactions.quantity",
}

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(query TransactionQuery) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByProduct(productID uuid.UUID) ([]model.Transaction, error)
	Save(tx *gorm.DB, transaction *model.Transaction) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create menerima *gorm.DB (tx) agar ledger entry dan product update commit
// sebagai satu unit.
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll(query TransactionQuery) ([]model.Transaction, error) {
	var transactions []model.Transaction
	q := r.db.Preload("Product")

	if query.Product != nil {
		q = q.Where("transactions.product_id = ?", *query.Product)
	}
	if query.Type != "" {
		q = q.Where("transactions.transaction_type = ?", query.Type)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Joins("JOIN products ON products.id = transactions.product_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(transactions.notes) LIKE ?", pattern, pattern)
	}
	q = q.Order(orderClause(query.Ordering, transactionOrderings, "transactions.transaction_date DESC"))

	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

// FindByProduct returns a product's ledger history, newest first.
func (r *transactionRepo) FindByProduct(productID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Product").
		Where("product_id = ?", productID).
		Order("transaction_date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) Save(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Save(transaction).Error
}

func (r *transactionRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Transaction{}, "id = ?", id).Error
}
