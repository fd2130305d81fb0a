package service

import (
	"errors"

	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"
	"github.com/Tabish5858/inventory-managment-system/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService is the ledger engine: every mutation of a transaction
// record adjusts the product's running balance in the same database
// transaction, so quantity never diverges from the sum of ledger deltas.
type InventoryService interface {
	RecordTransaction(req *model.TransactionRequest) (*model.Transaction, *model.Product, error)
	GetTransactions(query repository.TransactionQuery) ([]model.Transaction, error)
	GetTransaction(id uuid.UUID) (*model.Transaction, error)
	GetTransactionsByProduct(productID uuid.UUID) ([]model.Transaction, error)
	UpdateTransaction(id uuid.UUID, req *model.TransactionRequest) (*model.Transaction, error)
	DeleteTransaction(id uuid.UUID) error
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
	}
}

// RecordTransaction creates a ledger entry and applies its quantity delta to
// the product as one atomic unit. The delta is applied with an in-place SQL
// increment, so concurrent entries against the same product cannot lose
// updates. Adjustments record their quantity verbatim without touching the
// balance.
func (s *inventoryService) RecordTransaction(req *model.TransactionRequest) (*model.Transaction, *model.Product, error) {
	// 1. Validasi Input
	if err := validateRequest(req); err != nil {
		return nil, nil, err
	}

	transaction := &model.Transaction{
		ProductID: req.Product,
		Quantity:  req.Quantity,
		Type:      req.Type,
		Notes:     req.Notes,
	}

	var product model.Product
	// Gunakan Transaction Block (Atomic Operation)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", req.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if delta := req.Type.QuantityDelta(req.Quantity); delta != 0 {
			if err := s.productRepo.ApplyQuantityDelta(tx, product.ID, delta); err != nil {
				return err
			}
		}

		if err := s.transactionRepo.Create(tx, transaction); err != nil {
			return err
		}

		// Re-read so the caller sees the committed balance.
		return tx.First(&product, "id = ?", product.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	transaction.Product = &product
	s.broadcastStockUpdate("transaction_created", transaction, &product)

	return transaction, &product, nil
}

func (s *inventoryService) GetTransactions(query repository.TransactionQuery) ([]model.Transaction, error) {
	return s.transactionRepo.FindAll(query)
}

func (s *inventoryService) GetTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (s *inventoryService) GetTransactionsByProduct(productID uuid.UUID) ([]model.Transaction, error) {
	return s.transactionRepo.FindByProduct(productID)
}

// UpdateTransaction edits a ledger entry and keeps the balance honest:
// the old delta is reversed and the new one applied, crossing products if
// the product reference changed.
func (s *inventoryService) UpdateTransaction(id uuid.UUID, req *model.TransactionRequest) (*model.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Transaction
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		var product model.Product
		if err := tx.First(&product, "id = ?", req.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if delta := existing.Type.QuantityDelta(existing.Quantity); delta != 0 {
			if err := s.productRepo.ApplyQuantityDelta(tx, existing.ProductID, -delta); err != nil {
				return err
			}
		}

		existing.ProductID = req.Product
		existing.Product = nil
		existing.Quantity = req.Quantity
		existing.Type = req.Type
		existing.Notes = req.Notes

		if delta := req.Type.QuantityDelta(req.Quantity); delta != 0 {
			if err := s.productRepo.ApplyQuantityDelta(tx, req.Product, delta); err != nil {
				return err
			}
		}

		return s.transactionRepo.Save(tx, &existing)
	})
	if err != nil {
		return nil, err
	}

	// Reload with the product preloaded so the response carries the derived
	// product name and the settled balance.
	updated, err := s.transactionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if updated.Product != nil {
		s.broadcastStockUpdate("transaction_updated", updated, updated.Product)
	}
	return updated, nil
}

// DeleteTransaction reverses the entry's effect on the balance before
// removing it.
func (s *inventoryService) DeleteTransaction(id uuid.UUID) error {
	var removed model.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if delta := removed.Type.QuantityDelta(removed.Quantity); delta != 0 {
			if err := s.productRepo.ApplyQuantityDelta(tx, removed.ProductID, -delta); err != nil {
				return err
			}
		}

		return s.transactionRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	if product, perr := s.productRepo.FindByID(removed.ProductID); perr == nil {
		s.broadcastStockUpdate("transaction_deleted", &removed, product)
	}
	return nil
}

func (s *inventoryService) broadcastStockUpdate(action string, transaction *model.Transaction, product *model.Product) {
	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"transaction": map[string]interface{}{
			"id":               transaction.ID,
			"transaction_type": transaction.Type,
			"quantity":         transaction.Quantity,
			"product_id":       product.ID,
		},
		"product": map[string]interface{}{
			"name":      product.Name,
			"sku":       product.SKU,
			"quantity":  product.Quantity,
			"low_stock": product.IsLowStock(),
		},
	})
}
