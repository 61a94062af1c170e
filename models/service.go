package models

import "time"

// Service is a single-wash catalog entry. Per-category prices are what the
// storefront displays; the booking pipeline freezes the standard price times
// the category multiplier into the order at creation.
type Service struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	NameAr            string    `gorm:"type:varchar(100);not null" json:"name_ar"`
	NameEn            *string   `gorm:"type:varchar(100)" json:"name_en,omitempty"`
	Description       *string   `gorm:"type:text" json:"description,omitempty"`
	BasePriceStandard float64   `gorm:"type:decimal(10,2);not null" json:"base_price_standard"`
	BasePriceSUV      float64   `gorm:"type:decimal(10,2);not null" json:"base_price_suv"`
	BasePriceLuxury   float64   `gorm:"type:decimal(10,2);not null" json:"base_price_luxury"`
	DurationMinutes   *int      `json:"duration_minutes,omitempty"`
	Features          *string   `gorm:"type:text" json:"features,omitempty"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	DisplayOrder      int       `gorm:"default:0" json:"display_order"`
	CreatedAt         time.Time `json:"created_at"`
}
