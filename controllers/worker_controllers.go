package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/services"
	"github.com/lam3a/rush-backend/store"
	"github.com/lam3a/rush-backend/utils"
)

type WorkerController struct {
	DB       *gorm.DB
	Store    *store.OrderStore
	Earnings *services.EarningsService
}

func NewWorkerController(db *gorm.DB, orderStore *store.OrderStore, earnings *services.EarningsService) *WorkerController {
	return &WorkerController{DB: db, Store: orderStore, Earnings: earnings}
}

// CreateWorker -> admin creates the user account and the worker profile
// together.
func (wc *WorkerController) CreateWorker(c *gin.Context) {
	type request struct {
		FullName   string  `json:"full_name" binding:"required"`
		Phone      string  `json:"phone" binding:"required"`
		Password   string  `json:"password" binding:"required,min=6"`
		EmployeeID *string `json:"employee_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var worker models.Worker
	err = wc.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			FullName: req.FullName,
			Phone:    req.Phone,
			Password: string(hashed),
			Role:     models.RoleWorker,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		worker = models.Worker{
			UserID:     user.ID,
			EmployeeID: req.EmployeeID,
			IsActive:   true,
		}
		return tx.Create(&worker).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Worker created: user %d", worker.UserID)
	utils.RespondJSON(c, http.StatusCreated, "Worker created", worker)
}

// GetAllWorkers -> admin list with user join.
func (wc *WorkerController) GetAllWorkers(c *gin.Context) {
	var workers []models.Worker
	if err := wc.DB.Preload("User").Find(&workers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All workers", workers)
}

// SetWorkerActive -> admin activates/deactivates a worker profile.
func (wc *WorkerController) SetWorkerActive(c *gin.Context) {
	workerID, _ := strconv.Atoi(c.Param("worker_id"))

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := wc.DB.Model(&models.Worker{}).Where("id = ?", workerID).Update("is_active", *req.IsActive)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("worker not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker updated", gin.H{"worker_id": workerID, "is_active": *req.IsActive})
}

// GetMyJobs -> the worker's assignment list, same scope query the sync
// controller uses.
func (wc *WorkerController) GetMyJobs(c *gin.Context) {
	scope := models.Scope{Role: models.RoleWorker, UserID: c.GetUint("user_id")}

	orders, err := wc.Store.FetchOrders(scope)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My jobs", orders)
}

// GetMyEarnings -> today/week/month buckets over completed jobs.
func (wc *WorkerController) GetMyEarnings(c *gin.Context) {
	summary, err := wc.Earnings.ForWorker(c.GetUint("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Earnings", summary)
}
