package models

import "time"

// Worker is the 1:1 profile attached to a User with role=worker.
// Rating is a running average over Review rows, recomputed on each new review.
type Worker struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EmployeeID *string   `gorm:"type:varchar(50)" json:"employee_id,omitempty"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	Rating     float64   `gorm:"type:decimal(3,2);default:0" json:"rating"`
	TotalJobs  int       `gorm:"default:0" json:"total_jobs"`
	CreatedAt  time.Time `json:"created_at"`
}
