package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxPurchase   TransactionType = "purchase"
	TxSale       TransactionType = "sale"
	TxReturn     TransactionType = "return"
	TxAdjustment TransactionType = "adjustment"
)

// QuantityDelta returns the signed change a transaction of this type with
// recorded quantity q applies to the product's running balance.
// Adjustments record q verbatim and apply no automatic change.
func (t TransactionType) QuantityDelta(q int) int {
	switch t {
	case TxPurchase, TxReturn:
		return q
	case TxSale:
		return -q
	default:
		return 0
	}
}

type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`

	Quantity        int             `gorm:"not null" json:"quantity"`
	Type            TransactionType `gorm:"column:transaction_type;type:varchar(20);not null" json:"transaction_type"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	return
}

// TransactionRequest is the write schema for recording ledger entries
type TransactionRequest struct {
	Product  uuid.UUID       `json:"product" validate:"uuid_required"`
	Quantity int             `json:"quantity"`
	Type     TransactionType `json:"transaction_type" validate:"required,oneof=purchase sale return adjustment"`
	Notes    string          `json:"notes"`
}

// TransactionResponse for API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Product         uuid.UUID       `json:"product"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	Type            TransactionType `json:"transaction_type"`
	TransactionDate time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID,
		Product:         t.ProductID,
		Quantity:        t.Quantity,
		Type:            t.Type,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
	}
	if t.Product != nil {
		resp.ProductName = t.Product.Name
	}
	return resp
}
