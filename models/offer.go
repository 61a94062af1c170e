package models

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Offer struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           *string    `gorm:"type:varchar(30);uniqueIndex" json:"code,omitempty"`
	TitleAr        string     `gorm:"type:varchar(100);not null" json:"title_ar"`
	Description    *string    `gorm:"type:text" json:"description,omitempty"`
	DiscountType   *string    `gorm:"type:varchar(20)" json:"discount_type,omitempty"`
	DiscountValue  *float64   `gorm:"type:decimal(10,2)" json:"discount_value,omitempty"`
	MinOrderAmount float64    `gorm:"type:decimal(10,2);default:0" json:"min_order_amount"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	CurrentUses    int        `gorm:"default:0" json:"current_uses"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Usable reports whether the offer can still be applied to an order of the
// given amount at time now.
func (o *Offer) Usable(amount float64, now time.Time) bool {
	if !o.IsActive || o.DiscountType == nil || o.DiscountValue == nil {
		return false
	}
	if amount < o.MinOrderAmount {
		return false
	}
	if o.MaxUses != nil && o.CurrentUses >= *o.MaxUses {
		return false
	}
	if o.ValidFrom != nil && now.Before(*o.ValidFrom) {
		return false
	}
	if o.ValidUntil != nil && now.After(*o.ValidUntil) {
		return false
	}
	return true
}
