package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_id"`
	WorkerID   uint      `gorm:"not null;index" json:"worker_id"`
	CustomerID uint      `gorm:"not null" json:"customer_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
