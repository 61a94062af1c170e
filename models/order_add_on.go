package models

// OrderAddOn is a line item freezing the add-on price at booking time.
type OrderAddOn struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     string  `gorm:"type:varchar(32);not null;index" json:"order_id"`
	AddOnID     uint    `gorm:"not null" json:"add_on_id"`
	AddOn       *AddOn  `gorm:"foreignKey:AddOnID" json:"add_on,omitempty"`
	PriceAtTime float64 `gorm:"type:decimal(10,2);not null" json:"price_at_time"`
}
