package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	SKU         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Barcode     string     `gorm:"type:varchar(50)" json:"barcode"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *Category  `gorm:"constraint:OnDelete:SET NULL;" json:"category,omitempty"`

	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost_price"`

	// Quantity is a running balance maintained by the ledger. It may go
	// negative; no floor is enforced.
	Quantity          int `gorm:"not null" json:"quantity"`
	LowStockThreshold int `gorm:"not null" json:"low_stock_threshold"`

	// Relasi
	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE;" json:"transactions,omitempty"`
}

// DefaultLowStockThreshold applies when a create request omits the threshold.
const DefaultLowStockThreshold = 10

// IsLowStock reports whether the on-hand quantity is at or below the
// configured threshold. Derived, never stored.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// ProductRequest is the write schema for create/update
type ProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	SKU               string          `json:"sku" validate:"required"`
	Barcode           string          `json:"barcode"`
	Category          *uuid.UUID      `json:"category"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

// ProductResponse for API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	SKU               string          `json:"sku"`
	Barcode           string          `json:"barcode"`
	Category          *uuid.UUID      `json:"category"`
	CategoryName      string          `json:"category_name"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	resp := ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		Category:          p.CategoryID,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
