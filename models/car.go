package models

import "time"

type CarCategory string

const (
	CategoryStandard CarCategory = "standard"
	CategorySUV      CarCategory = "suv"
	CategoryLuxury   CarCategory = "luxury"
)

// CategoryMultipliers scales a service's base price by car category.
var CategoryMultipliers = map[CarCategory]float64{
	CategoryStandard: 1.0,
	CategorySUV:      1.2,
	CategoryLuxury:   1.35,
}

type Car struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Brand       string      `gorm:"type:varchar(50);not null" json:"brand"`
	Model       string      `gorm:"type:varchar(50);not null" json:"model"`
	Year        *int        `json:"year,omitempty"`
	Color       *string     `gorm:"type:varchar(30)" json:"color,omitempty"`
	PlateNumber *string     `gorm:"type:varchar(20)" json:"plate_number,omitempty"`
	Category    CarCategory `gorm:"type:varchar(20);not null;default:'standard'" json:"category"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
}
