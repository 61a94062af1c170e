package models

import "time"

// Package is a monthly subscription bundle of washes.
type Package struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	NameAr            string    `gorm:"type:varchar(100);not null" json:"name_ar"`
	NameEn            *string   `gorm:"type:varchar(100)" json:"name_en,omitempty"`
	Description       *string   `gorm:"type:text" json:"description,omitempty"`
	WashesPerMonth    int       `gorm:"not null" json:"washes_per_month"`
	PriceStandard     float64   `gorm:"type:decimal(10,2);not null" json:"price_standard"`
	PriceSUV          float64   `gorm:"type:decimal(10,2);not null" json:"price_suv"`
	PriceLuxury       float64   `gorm:"type:decimal(10,2);not null" json:"price_luxury"`
	IncludesSteaming  int       `gorm:"default:0" json:"includes_steaming"`
	IncludesPolishing int       `gorm:"default:0" json:"includes_polishing"`
	Benefits          *string   `gorm:"type:text" json:"benefits,omitempty"`
	IsPopular         bool      `gorm:"default:false" json:"is_popular"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}
