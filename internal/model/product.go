package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to exactly one category. Price and stock are validated
// non-negative at the service layer before any write.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	ImageURL    string          `json:"imageUrl,omitempty" gorm:"size:500"`
	CategoryID  uint            `json:"categoryId" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
