package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
)

// EarningsSummary buckets a worker's completed order totals into rolling
// windows.
type EarningsSummary struct {
	Today         float64 `json:"today"`
	Week          float64 `json:"week"`
	Month         float64 `json:"month"`
	TotalJobs     int     `json:"total_jobs"`
	CompletedJobs int     `json:"completed_jobs"`
}

type EarningsService struct {
	DB *gorm.DB
}

func NewEarningsService(db *gorm.DB) *EarningsService {
	return &EarningsService{DB: db}
}

// ForWorker aggregates the worker's completed orders. Buckets use the
// order's creation time, not its completion time, so the numbers read as
// "jobs taken" per window rather than "jobs finished".
func (s *EarningsService) ForWorker(workerUserID uint) (EarningsSummary, error) {
	var orders []models.Order
	err := s.DB.
		Select("total_amount", "created_at").
		Where("worker_id = ? AND status = ?", workerUserID, models.StatusCompleted).
		Find(&orders).Error
	if err != nil {
		return EarningsSummary{}, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	summary := EarningsSummary{
		TotalJobs:     len(orders),
		CompletedJobs: len(orders),
	}
	for _, o := range orders {
		if !o.CreatedAt.Before(startOfDay) {
			summary.Today += o.TotalAmount
		}
		if !o.CreatedAt.Before(weekAgo) {
			summary.Week += o.TotalAmount
		}
		if !o.CreatedAt.Before(monthAgo) {
			summary.Month += o.TotalAmount
		}
	}
	return summary, nil
}
