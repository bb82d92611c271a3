package entities

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	StoreName         string    `json:"store_name"`
	TransactionDate   time.Time `json:"transaction_date"`
	Subtotal          float64   `json:"subtotal"`
	TaxRate           float64   `json:"tax_rate"`
	TaxAmount         float64   `json:"tax_amount"`
	Total             float64   `json:"total"`
	ImageURL          string    `json:"image_url,omitempty"`
	Category          string    `json:"category"`
	TaxReliefCategory *string   `json:"tax_relief_category,omitempty"`
	CurrencyConverted bool      `json:"currency_converted"`
	OriginalCurrency  string    `json:"original_currency,omitempty"`

	User      *User              `gorm:"foreignKey:UserID"`
	Items     []*ReceiptItem     `gorm:"foreignKey:ReceiptID"`
	Discounts []*ReceiptDiscount `gorm:"foreignKey:ReceiptID"`
	Timestamp
}

type ReceiptItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReceiptID uuid.UUID `json:"receipt_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`

	Receipt *Receipt `gorm:"foreignKey:ReceiptID"`
}

type ReceiptDiscount struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReceiptID   uuid.UUID `json:"receipt_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`

	Receipt *Receipt `gorm:"foreignKey:ReceiptID"`
}
