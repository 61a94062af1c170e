package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/services"
	"github.com/lam3a/rush-backend/store"
	"github.com/lam3a/rush-backend/utils"
)

type ReviewController struct {
	DB      *gorm.DB
	Store   *store.OrderStore
	Reviews *services.ReviewService
}

func NewReviewController(db *gorm.DB, orderStore *store.OrderStore, reviews *services.ReviewService) *ReviewController {
	return &ReviewController{DB: db, Store: orderStore, Reviews: reviews}
}

// CreateReview -> a customer rates their own completed order.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		OrderID string `json:"order_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := rc.Store.FetchOrder(req.OrderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if order.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	review, err := rc.Reviews.Submit(order, userID, req.Rating, req.Comment)
	switch {
	case errors.Is(err, services.ErrOrderNotCompleted), errors.Is(err, services.ErrAlreadyReviewed):
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review submitted", review)
}

// GetWorkerReviews lists reviews for one worker, newest first.
func (rc *ReviewController) GetWorkerReviews(c *gin.Context) {
	workerUserID, _ := strconv.Atoi(c.Param("worker_user_id"))

	var reviews []models.Review
	if err := rc.DB.Where("worker_id = ?", workerUserID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker reviews", reviews)
}
