package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

type CarController struct {
	DB *gorm.DB
}

func NewCarController(db *gorm.DB) *CarController {
	return &CarController{DB: db}
}

func (cc *CarController) GetMyCars(c *gin.Context) {
	userID := c.GetUint("user_id")

	var cars []models.Car
	if err := cc.DB.Where("user_id = ? AND is_active = ?", userID, true).Find(&cars).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My cars", cars)
}

func (cc *CarController) CreateCar(c *gin.Context) {
	userID := c.GetUint("user_id")

	type request struct {
		Brand       string `json:"brand" binding:"required"`
		Model       string `json:"model" binding:"required"`
		Year        *int   `json:"year"`
		Color       string `json:"color"`
		PlateNumber string `json:"plate_number"`
		Category    string `json:"category" binding:"required,oneof=standard suv luxury"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	car := models.Car{
		UserID:   userID,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Category: models.CarCategory(req.Category),
		IsActive: true,
	}
	if req.Color != "" {
		car.Color = &req.Color
	}
	if req.PlateNumber != "" {
		car.PlateNumber = &req.PlateNumber
	}

	if err := cc.DB.Create(&car).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Car added", car)
}

func (cc *CarController) UpdateCar(c *gin.Context) {
	userID := c.GetUint("user_id")
	carID := c.Param("car_id")

	var car models.Car
	if err := cc.DB.Where("id = ? AND user_id = ?", carID, userID).First(&car).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Color       *string `json:"color"`
		PlateNumber *string `json:"plate_number"`
		Category    *string `json:"category"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Color != nil {
		car.Color = req.Color
	}
	if req.PlateNumber != nil {
		car.PlateNumber = req.PlateNumber
	}
	if req.Category != nil {
		car.Category = models.CarCategory(*req.Category)
	}

	if err := cc.DB.Save(&car).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Car updated", car)
}

// DeleteCar soft-deactivates; orders keep their car reference.
func (cc *CarController) DeleteCar(c *gin.Context) {
	userID := c.GetUint("user_id")
	carID := c.Param("car_id")

	res := cc.DB.Model(&models.Car{}).
		Where("id = ? AND user_id = ?", carID, userID).
		Update("is_active", false)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Car removed", gin.H{"car_id": carID})
}
