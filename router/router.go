package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/controllers"
	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/middlewares"
	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/services"
	"github.com/lam3a/rush-backend/store"
)

// SetupRouter wires every endpoint. Route groups follow the role split:
// public catalog + auth, customer, worker, admin, and the websocket feed.
func SetupRouter(db *gorm.DB, hub *feed.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	orderStore := store.NewOrderStore(db)
	engine := services.NewStatusEngine(orderStore)
	earnings := services.NewEarningsService(db)
	reviews := services.NewReviewService(db)

	userCtrl := controllers.NewUserController(db)
	carCtrl := controllers.NewCarController(db)
	orderCtrl := controllers.NewOrderController(db, orderStore, engine)
	workerCtrl := controllers.NewWorkerController(db, orderStore, earnings)
	reviewCtrl := controllers.NewReviewController(db, orderStore, reviews)
	notifCtrl := controllers.NewNotificationController(db, hub)
	adminCtrl := controllers.NewAdminController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	feedCtrl := controllers.NewFeedController(hub)

	limiter := middlewares.NewRateLimiter(100, 60)

	// Public
	public := r.Group("/api/v1")
	public.Use(limiter.RateLimit())
	{
		public.POST("/auth/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
		public.POST("/auth/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)

		public.GET("/services", catalogCtrl.GetServices)
		public.GET("/add-ons", catalogCtrl.GetAddOns)
		public.GET("/packages", catalogCtrl.GetPackages)
		public.GET("/offers", catalogCtrl.GetOffers)
		public.GET("/workers/:worker_user_id/reviews", reviewCtrl.GetWorkerReviews)
	}

	// Authenticated (any role)
	auth := r.Group("/api/v1")
	auth.Use(limiter.RateLimit(), middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.GET("/notifications", notifCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:notif_id/read", notifCtrl.MarkRead)
	}

	// Customer
	customer := r.Group("/api/v1")
	customer.Use(limiter.RateLimit(), middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleCustomer))
	{
		customer.GET("/cars", carCtrl.GetMyCars)
		customer.POST("/cars", carCtrl.CreateCar)
		customer.PATCH("/cars/:car_id", carCtrl.UpdateCar)
		customer.DELETE("/cars/:car_id", carCtrl.DeleteCar)

		customer.POST("/orders", orderCtrl.CreateOrder)
		customer.POST("/reviews", reviewCtrl.CreateReview)
	}

	// Worker
	worker := r.Group("/api/v1/worker")
	worker.Use(limiter.RateLimit(), middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleWorker))
	{
		worker.GET("/jobs", workerCtrl.GetMyJobs)
		worker.GET("/earnings", workerCtrl.GetMyEarnings)
		worker.PATCH("/orders/:order_id/status", orderCtrl.AdvanceStatus)
	}

	// Admin
	admin := r.Group("/api/v1/admin")
	admin.Use(limiter.RateLimit(), middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/stats", adminCtrl.GetDashboardStats)
		admin.GET("/orders/export", adminCtrl.ExportOrders)
		admin.GET("/orders/:order_id/history", adminCtrl.GetOrderHistory)

		admin.PATCH("/orders/:order_id/confirm", orderCtrl.ConfirmOrder)
		admin.PATCH("/orders/:order_id/assign", orderCtrl.AssignWorker)
		admin.PATCH("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		admin.PATCH("/orders/:order_id/paid", orderCtrl.MarkPaid)

		admin.GET("/workers", workerCtrl.GetAllWorkers)
		admin.POST("/workers", workerCtrl.CreateWorker)
		admin.PATCH("/workers/:worker_id/active", workerCtrl.SetWorkerActive)

		admin.POST("/notifications", notifCtrl.CreateNotification)

		admin.POST("/services", catalogCtrl.CreateService)
		admin.PATCH("/services/:service_id", catalogCtrl.UpdateService)
		admin.DELETE("/services/:service_id", catalogCtrl.DeleteService)
		admin.POST("/add-ons", catalogCtrl.CreateAddOn)
		admin.DELETE("/add-ons/:add_on_id", catalogCtrl.DeleteAddOn)
		admin.POST("/packages", catalogCtrl.CreatePackage)
		admin.POST("/offers", catalogCtrl.CreateOffer)
		admin.DELETE("/offers/:offer_id", catalogCtrl.DeleteOffer)
	}

	// Realtime feed (token via query param)
	r.GET("/ws/feed", middlewares.WebSocketAuthMiddleware(), feedCtrl.HandleWebSocket)

	return r
}
