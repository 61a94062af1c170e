package models

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusAssigned   OrderStatus = "assigned"
	StatusOnTheWay   OrderStatus = "on_the_way"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further transition may leave this status.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

const (
	OrderTypeSingle  = "single"
	OrderTypePackage = "package"

	PaymentCash   = "cash"
	PaymentOnline = "online"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Order is the central entity. The pricing fields are computed once at
// creation and frozen; TotalAmount always equals
// BasePrice*CategoryMultiplier + AddOnsTotal - DiscountAmount.
type Order struct {
	ID                 string      `gorm:"primaryKey;type:varchar(32)" json:"id"`
	UserID             uint        `gorm:"not null;index" json:"user_id"`
	User               *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CarID              uint        `gorm:"not null" json:"car_id"`
	Car                *Car        `gorm:"foreignKey:CarID" json:"car,omitempty"`
	ServiceID          *uint       `json:"service_id,omitempty"`
	Service            *Service    `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	PackageID          *uint       `json:"package_id,omitempty"`
	Package            *Package    `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	OrderType          string      `gorm:"type:varchar(20);not null;default:'single'" json:"order_type"`
	BasePrice          float64     `gorm:"type:decimal(10,2);not null" json:"base_price"`
	CategoryMultiplier float64     `gorm:"type:decimal(4,2);not null;default:1" json:"category_multiplier"`
	AddOnsTotal        float64     `gorm:"type:decimal(10,2);not null;default:0" json:"add_ons_total"`
	DiscountAmount     float64     `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	TotalAmount        float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Address            string      `gorm:"type:text;not null" json:"address"`
	GoogleMapsLink     *string     `gorm:"type:text" json:"google_maps_link,omitempty"`
	PreferredDate      string      `gorm:"type:varchar(10);not null" json:"preferred_date"`
	PreferredTime      string      `gorm:"type:varchar(5);not null" json:"preferred_time"`
	Status             OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	WorkerID           *uint       `gorm:"index" json:"worker_id,omitempty"`
	Worker             *User       `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	PaymentMethod      string      `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus      string      `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	CustomerNotes      *string     `gorm:"type:text" json:"customer_notes,omitempty"`
	AdminNotes         *string     `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt          time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"not null" json:"updated_at"`

	AddOns        []OrderAddOn         `gorm:"foreignKey:OrderID" json:"add_ons,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`
}
