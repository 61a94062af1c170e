package models

import "time"

type AddOn struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	NameAr          string    `gorm:"type:varchar(100);not null" json:"name_ar"`
	NameEn          *string   `gorm:"type:varchar(100)" json:"name_en,omitempty"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
