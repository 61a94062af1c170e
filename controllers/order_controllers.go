package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/services"
	"github.com/lam3a/rush-backend/store"
	"github.com/lam3a/rush-backend/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Store  *store.OrderStore
	Engine *services.StatusEngine
}

func NewOrderController(db *gorm.DB, orderStore *store.OrderStore, engine *services.StatusEngine) *OrderController {
	return &OrderController{DB: db, Store: orderStore, Engine: engine}
}

func (oc *OrderController) actor(c *gin.Context) services.Actor {
	return services.Actor{
		UserID: c.GetUint("user_id"),
		Role:   c.GetString("role"),
	}
}

// CreateOrder books a wash. Pricing is computed here once and frozen into
// the order: base price (standard rate) times the car category multiplier,
// plus add-ons, minus offer discount. Later edits to the catalog never
// change an existing order's total.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	type request struct {
		CarID          uint    `json:"car_id" binding:"required"`
		ServiceID      uint    `json:"service_id" binding:"required"`
		AddOnIDs       []uint  `json:"add_on_ids"`
		OfferCode      *string `json:"offer_code"`
		Address        string  `json:"address" binding:"required"`
		GoogleMapsLink *string `json:"google_maps_link"`
		PreferredDate  string  `json:"preferred_date" binding:"required"`
		PreferredTime  string  `json:"preferred_time" binding:"required"`
		PaymentMethod  string  `json:"payment_method" binding:"required,oneof=cash online"`
		CustomerNotes  *string `json:"customer_notes"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var car models.Car
	if err := oc.DB.Where("id = ? AND user_id = ?", req.CarID, userID).First(&car).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("car not found"))
		return
	}

	var svc models.Service
	if err := oc.DB.Where("id = ? AND is_active = ?", req.ServiceID, true).First(&svc).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("service not found"))
		return
	}

	var addOns []models.AddOn
	if len(req.AddOnIDs) > 0 {
		if err := oc.DB.Where("id IN ? AND is_active = ?", req.AddOnIDs, true).Find(&addOns).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	basePrice := svc.BasePriceStandard
	multiplier := models.CategoryMultipliers[car.Category]
	addOnsTotal := utils.AddOnsTotal(addOns)
	subtotal := utils.OrderTotal(basePrice, multiplier, addOnsTotal, 0)

	var discount float64
	var offer *models.Offer
	if req.OfferCode != nil && *req.OfferCode != "" {
		var o models.Offer
		if err := oc.DB.Where("code = ?", *req.OfferCode).First(&o).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid offer code"))
			return
		}
		if !o.Usable(subtotal, time.Now()) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("offer not applicable"))
			return
		}
		discount = utils.Discount(subtotal, *o.DiscountType, *o.DiscountValue)
		offer = &o
	}

	now := time.Now()
	serviceID := svc.ID
	order := models.Order{
		ID:                 utils.GenerateOrderID(),
		UserID:             userID,
		CarID:              car.ID,
		ServiceID:          &serviceID,
		OrderType:          models.OrderTypeSingle,
		BasePrice:          basePrice,
		CategoryMultiplier: multiplier,
		AddOnsTotal:        addOnsTotal,
		DiscountAmount:     discount,
		TotalAmount:        utils.OrderTotal(basePrice, multiplier, addOnsTotal, discount),
		Address:            req.Address,
		GoogleMapsLink:     req.GoogleMapsLink,
		PreferredDate:      req.PreferredDate,
		PreferredTime:      req.PreferredTime,
		Status:             models.StatusPending,
		PaymentMethod:      req.PaymentMethod,
		PaymentStatus:      models.PaymentPending,
		CustomerNotes:      req.CustomerNotes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	lineItems := make([]models.OrderAddOn, 0, len(addOns))
	for _, a := range addOns {
		lineItems = append(lineItems, models.OrderAddOn{
			AddOnID:     a.ID,
			PriceAtTime: a.Price,
		})
	}

	if err := oc.Store.CreateOrder(&order, lineItems); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Audit trail starts at pending. Best effort, like every history write.
	if err := oc.Store.AppendStatusHistory(order.ID, models.StatusPending, &userID, "order created"); err != nil {
		utils.ErrorLogger.Printf("history for new order %s: %v", order.ID, err)
	}

	if offer != nil {
		oc.DB.Model(offer).Update("current_uses", gorm.Expr("current_uses + 1"))
	}

	// Broadcast notice for the admin feed.
	if err := oc.Store.CreateNotification(nil, "New order",
		fmt.Sprintf("Order %s: %s on %s %s", order.ID, svc.NameAr, order.PreferredDate, order.PreferredTime)); err != nil {
		utils.ErrorLogger.Printf("admin notice for order %s: %v", order.ID, err)
	}

	utils.InfoLogger.Printf("Order %s created by user %d (total %.2f)", order.ID, userID, order.TotalAmount)

	whatsapp := utils.WhatsAppLink("01031564146",
		utils.OrderWhatsAppMessage(order.ID, svc.NameAr, order.PreferredDate, order.PreferredTime, order.TotalAmount))

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":         order,
		"whatsapp_link": whatsapp,
	})
}

// GetOrders lists the orders visible to the caller's scope: customers see
// their own, workers their assignments, admins everything.
func (oc *OrderController) GetOrders(c *gin.Context) {
	scope := models.Scope{Role: c.GetString("role"), UserID: c.GetUint("user_id")}

	orders, err := oc.Store.FetchOrders(scope)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := oc.Store.FetchOrder(orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	scope := models.Scope{Role: c.GetString("role"), UserID: c.GetUint("user_id")}
	if !scope.Relevant(order) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// ConfirmOrder -> admin moves pending to confirmed.
func (oc *OrderController) ConfirmOrder(c *gin.Context) {
	oc.transition(c, models.StatusConfirmed, "confirmed by admin")
}

// AssignWorker -> admin assigns (or reassigns) a worker; status becomes
// assigned and worker_id is set in the same update.
func (oc *OrderController) AssignWorker(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		WorkerUserID uint `json:"worker_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var worker models.Worker
	if err := oc.DB.Where("user_id = ? AND is_active = ?", req.WorkerUserID, true).First(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("worker not found or inactive"))
		return
	}

	order, err := oc.Engine.AssignWorker(orderID, req.WorkerUserID, oc.actor(c))
	if err != nil {
		oc.respondTransitionError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worker assigned", order)
}

// CancelOrder -> admin cancels any non-terminal order.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "cancelled by admin"
	}
	oc.transition(c, models.StatusCancelled, req.Reason)
}

// AdvanceStatus -> the assigned worker walks the order through
// on_the_way -> in_progress -> completed, one step per call.
func (oc *OrderController) AdvanceStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=on_the_way in_progress completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.transition(c, models.OrderStatus(req.Status), "updated by worker")
}

func (oc *OrderController) transition(c *gin.Context, to models.OrderStatus, notes string) {
	orderID := c.Param("order_id")

	order, err := oc.Engine.RequestTransition(orderID, to, oc.actor(c), notes)
	if err != nil {
		oc.respondTransitionError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrTransitionRejected):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// MarkPaid -> admin flips payment_status. Independent of order status.
func (oc *OrderController) MarkPaid(c *gin.Context) {
	orderID := c.Param("order_id")

	err := oc.Store.UpdateOrder(orderID, map[string]interface{}{
		"payment_status": models.PaymentPaid,
	})
	if errors.Is(err, store.ErrOrderNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order marked paid", gin.H{"order_id": orderID})
}
