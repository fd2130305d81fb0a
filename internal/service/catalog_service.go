package service

import (
	"errors"

	"github.com/Tabish5858/inventory-managment-system/internal/model"
	"github.com/Tabish5858/inventory-managment-system/internal/repository"
	"github.com/Tabish5858/inventory-managment-system/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateCategory(req *model.CategoryRequest) (*model.Category, error)
	GetCategories(search string) ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error

	CreateProduct(req *model.ProductRequest) (*model.Product, error)
	GetProducts(query repository.ProductQuery) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.ProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetLowStockProducts() ([]model.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(cRepo repository.CategoryRepository, pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateCategory(req *model.CategoryRequest) (*model.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategories(search string) ([]model.Category, error) {
	return s.categoryRepo.FindAll(search)
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory nullifies the category reference on dependent products and
// removes the category, as one atomic unit.
func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.categoryRepo.Delete(tx, id)
	})
}

func (s *catalogService) CreateProduct(req *model.ProductRequest) (*model.Product, error) {
	// 1. Validasi Struct Dasar
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Referenced category must exist
	if req.Category != nil {
		if _, err := s.GetCategory(*req.Category); err != nil {
			return nil, err
		}
	}

	// 3. Cek Duplikasi SKU (Business Logic Validation)
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateSKU
	}

	threshold := model.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	product := &model.Product{
		Name:              req.Name,
		Description:       req.Description,
		SKU:               req.SKU,
		Barcode:           req.Barcode,
		CategoryID:        req.Category,
		Price:             req.Price,
		CostPrice:         req.CostPrice,
		Quantity:          req.Quantity,
		LowStockThreshold: threshold,
	}
	if err := s.productRepo.Create(product); err != nil {
		// A concurrent writer can slip past the FindBySKU check; the unique
		// index is the real guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}

	// Reload so the response carries the preloaded category.
	product, err := s.GetProduct(product.ID)
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":        product.ID,
			"sku":       product.SKU,
			"name":      product.Name,
			"quantity":  product.Quantity,
			"low_stock": product.IsLowStock(),
		},
	})

	return product, nil
}

func (s *catalogService) GetProducts(query repository.ProductQuery) ([]model.Product, error) {
	return s.productRepo.FindAll(query)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		if _, err := s.GetCategory(*req.Category); err != nil {
			return nil, err
		}
	}

	// SKU stays unique across all products
	if req.SKU != product.SKU {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing != nil && existing.ID != uuid.Nil && existing.ID != product.ID {
			return nil, ErrDuplicateSKU
		}
	}

	product.Name = req.Name
	product.Description = req.Description
	product.SKU = req.SKU
	product.Barcode = req.Barcode
	product.CategoryID = req.Category
	product.Category = nil
	product.Price = req.Price
	product.CostPrice = req.CostPrice
	product.Quantity = req.Quantity
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}

	product, err = s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":        product.ID,
			"sku":       product.SKU,
			"name":      product.Name,
			"quantity":  product.Quantity,
			"low_stock": product.IsLowStock(),
		},
	})

	return product, nil
}

// DeleteProduct removes the product and cascades to its ledger history.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.productRepo.Delete(tx, id)
	})
}

// GetLowStockProducts re-evaluates the report on every call; nothing is cached.
func (s *catalogService) GetLowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}
