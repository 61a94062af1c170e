package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
)

var (
	ErrOrderNotCompleted = errors.New("order is not completed")
	ErrAlreadyReviewed   = errors.New("order already reviewed")
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Submit records a customer review for a completed order and recomputes the
// worker's running average rating.
func (s *ReviewService) Submit(order *models.Order, customerID uint, rating int, comment string) (*models.Review, error) {
	if order.Status != models.StatusCompleted {
		return nil, ErrOrderNotCompleted
	}
	if order.WorkerID == nil {
		return nil, errors.New("order has no worker")
	}

	var existing int64
	s.DB.Model(&models.Review{}).Where("order_id = ?", order.ID).Count(&existing)
	if existing > 0 {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		OrderID:    order.ID,
		WorkerID:   *order.WorkerID,
		CustomerID: customerID,
		Rating:     rating,
		CreatedAt:  time.Now(),
	}
	if comment != "" {
		review.Comment = &comment
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("worker_id = ?", *order.WorkerID).
			Select("AVG(rating)").
			Row().Scan(&avg); err != nil {
			return err
		}

		return tx.Model(&models.Worker{}).
			Where("user_id = ?", *order.WorkerID).
			Update("rating", avg).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
