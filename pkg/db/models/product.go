package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Unpublished products stay addressable by ID but
// never appear in public listings.
type Product struct {
	ID            string           `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Description   string           `gorm:"column:description;not null" json:"description"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(12,2)" json:"originalPrice,omitempty"`
	Rating        float64          `gorm:"column:rating;not null;default:0" json:"rating"`
	Reviews       int              `gorm:"column:reviews;not null;default:0" json:"reviews"`
	Sold          int              `gorm:"column:sold;not null;default:0" json:"sold"`
	Category      string           `gorm:"column:category;not null;index" json:"category"`
	Subcategory   *string          `gorm:"column:subcategory" json:"subcategory,omitempty"`
	ImageURL      string           `gorm:"column:image_url;not null" json:"imageUrl"`
	StoreName     string           `gorm:"column:store_name;not null" json:"storeName"`
	Published     bool             `gorm:"column:published;not null;default:false" json:"published"`
	Position      int              `gorm:"column:position;not null;default:0" json:"-"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"-"`
}

// TableName pins the table regardless of naming strategy.
func (Product) TableName() string {
	return "products"
}

// HasDiscount reports whether the product carries a pre-discount price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice != nil
}

// ValidatePricing enforces originalPrice >= price and non-negative prices.
func (p Product) ValidatePricing() error {
	if p.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		return fmt.Errorf("original price %s is below price %s", p.OriginalPrice.String(), p.Price.String())
	}
	return nil
}

// Clone returns a copy that shares no pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		out.OriginalPrice = &orig
	}
	if p.Subcategory != nil {
		sub := *p.Subcategory
		out.Subcategory = &sub
	}
	return out
}
