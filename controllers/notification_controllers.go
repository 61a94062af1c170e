package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

type NotificationController struct {
	DB  *gorm.DB
	Hub *feed.Hub
}

func NewNotificationController(db *gorm.DB, hub *feed.Hub) *NotificationController {
	return &NotificationController{DB: db, Hub: hub}
}

// GetMyNotifications lists the caller's notices plus broadcasts.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// CreateNotification -> admin sends to a specific user or broadcasts.
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		UserID  *uint  `json:"user_id"`
		Title   string `json:"title"`
		Message string `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif := models.Notification{
		UserID:  body.UserID,
		Message: body.Message,
	}
	if body.Title != "" {
		notif.Title = &body.Title
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	nc.Hub.BroadcastNotification(notif)
	utils.InfoLogger.Printf("Notification created: %v", notif.Message)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// MarkRead flips a single notice owned by the caller.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("notif_id"))

	res := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification read", gin.H{"notif_id": id})
}
