package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/config"
	"github.com/lam3a/rush-backend/database"
	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/router"
	"github.com/lam3a/rush-backend/services"
	"github.com/lam3a/rush-backend/utils"
)

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.Car{},
		&models.Service{},
		&models.AddOn{},
		&models.Package{},
		&models.Offer{},
		&models.Order{},
		&models.OrderAddOn{},
		&models.OrderStatusHistory{},
		&models.Review{},
		&models.Notification{},
		&models.DBChange{},
	)
}

func main() {
	utils.InitLogger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect database: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to install change triggers: %v", err)
	}

	hub := feed.NewHub()

	monitor := services.NewChangeMonitor(db, hub)
	monitor.Interval = cfg.PollInterval
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, hub)

	go func() {
		utils.InfoLogger.Printf("Server starting on port %s", cfg.AppPort)
		if err := r.Run(":" + cfg.AppPort); err != nil {
			utils.ErrorLogger.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down")
}
