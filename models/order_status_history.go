package models

import "time"

// OrderStatusHistory is an append-only audit log. Rows are never updated or
// deleted; one is written on every status transition, including creation.
// ChangedBy is nil for system-generated entries.
type OrderStatusHistory struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID   string      `gorm:"type:varchar(32);not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	ChangedBy *uint       `json:"changed_by,omitempty"`
	Notes     *string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}
