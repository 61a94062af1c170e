package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
)

// ErrOrderNotFound distinguishes a missing row from a real store failure.
// An empty list result is not an error.
var ErrOrderNotFound = errors.New("order not found")

// StoreError wraps a driver-level failure. Callers that need to tell
// "backend down" apart from "no such order" check for ErrOrderNotFound
// first.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// OrderStore is the typed access layer for orders. It is injected into the
// sync controllers and the status engine so tests can substitute doubles.
type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

func (s *OrderStore) joined() *gorm.DB {
	return s.DB.
		Preload("Car").
		Preload("Service").
		Preload("Worker").
		Preload("AddOns").
		Preload("AddOns.AddOn")
}

// FetchOrders returns every order visible to the scope, newest first, with
// car/service/worker joins loaded. Customer scope filters by owner, worker
// scope by assignment, admin sees everything.
func (s *OrderStore) FetchOrders(scope models.Scope) ([]models.Order, error) {
	q := s.joined().Order("created_at DESC")
	switch scope.Role {
	case models.RoleCustomer:
		q = q.Where("user_id = ?", scope.UserID)
	case models.RoleWorker:
		q = q.Where("worker_id = ?", scope.UserID)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, &StoreError{Op: "fetch orders", Err: err}
	}
	return orders, nil
}

// FetchOrder returns a single order with joins, or ErrOrderNotFound.
func (s *OrderStore) FetchOrder(id string) (*models.Order, error) {
	var order models.Order
	err := s.joined().Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "fetch order", Err: err}
	}
	return &order, nil
}

// CreateOrder persists a new order with its add-on line items in one
// transaction.
func (s *OrderStore) CreateOrder(order *models.Order, lineItems []models.OrderAddOn) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range lineItems {
			lineItems[i].OrderID = order.ID
		}
		if len(lineItems) > 0 {
			if err := tx.Create(&lineItems).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &StoreError{Op: "create order", Err: err}
	}
	return nil
}

// UpdateOrder applies a partial update. It does not emit a change
// notification; the orders triggers feed the outbox from the same write.
func (s *OrderStore) UpdateOrder(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := s.DB.Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return &StoreError{Op: "update order", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// AppendStatusHistory writes one audit row. Best effort: a failure here is
// reported to the caller for logging but must never roll back the order
// update it describes.
func (s *OrderStore) AppendStatusHistory(orderID string, status models.OrderStatus, changedBy *uint, notes string) error {
	entry := models.OrderStatusHistory{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Status:    status,
		ChangedBy: changedBy,
		CreatedAt: time.Now(),
	}
	if notes != "" {
		entry.Notes = &notes
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return &StoreError{Op: "append status history", Err: err}
	}
	return nil
}

// CreateNotification persists a notice for one user, or a broadcast when
// userID is nil.
func (s *OrderStore) CreateNotification(userID *uint, title, message string) error {
	notif := models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if title != "" {
		notif.Title = &title
	}
	if err := s.DB.Create(&notif).Error; err != nil {
		return &StoreError{Op: "create notification", Err: err}
	}
	return nil
}

// IncrementWorkerJobs bumps the worker profile's completed-job counter.
func (s *OrderStore) IncrementWorkerJobs(workerUserID uint) error {
	err := s.DB.Model(&models.Worker{}).
		Where("user_id = ?", workerUserID).
		Update("total_jobs", gorm.Expr("total_jobs + 1")).Error
	if err != nil {
		return &StoreError{Op: "increment worker jobs", Err: err}
	}
	return nil
}
