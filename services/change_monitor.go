package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

// ChangeMonitor polls the db_changes outbox that the orders triggers write
// and turns unprocessed rows into feed events. The raw outbox row only has
// the order id, so the monitor refetches the joined order before publishing;
// insert subscribers always receive a row with car/service/worker loaded.
type ChangeMonitor struct {
	DB       *gorm.DB
	Hub      *feed.Hub
	Interval time.Duration

	stopChan chan struct{}
	backoff  *utils.Backoff
}

func NewChangeMonitor(db *gorm.DB, hub *feed.Hub) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Hub:      hub,
		Interval: time.Second,
		stopChan: make(chan struct{}),
		backoff:  utils.NewBackoff(500*time.Millisecond, 10*time.Second, 0),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := cm.checkChanges(); err != nil {
					// Poll errors back off so a dead database is not
					// hammered at the tick rate.
					delay, _ := cm.backoff.Next()
					utils.ErrorLogger.Printf("change monitor: %v (next poll in %v)", err, delay)
					select {
					case <-time.After(delay):
					case <-cm.stopChan:
						return
					}
				} else {
					cm.backoff.Reset()
				}
			case <-cm.stopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.stopChan)
}

func (cm *ChangeMonitor) checkChanges() error {
	var changes []models.DBChange

	tx := cm.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, change := range changes {
		if change.TableName == "orders" {
			cm.processOrderChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

func (cm *ChangeMonitor) processOrderChange(change models.DBChange) {
	var order models.Order
	err := cm.DB.
		Preload("Car").
		Preload("Service").
		Preload("Worker").
		Preload("AddOns").
		Preload("AddOns.AddOn").
		Where("id = ?", change.RecordID).
		First(&order).Error
	if err != nil {
		utils.ErrorLogger.Printf("change monitor: fetch order %s: %v", change.RecordID, err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		cm.Hub.PublishOrder(feed.OrderEvent{
			Type:  feed.EventOrderInsert,
			Order: order,
		})
	case "UPDATE":
		ev := feed.OrderEvent{
			Type:  feed.EventOrderUpdate,
			Order: order,
		}
		if change.OldStatus != nil {
			ev.OldStatus = models.OrderStatus(*change.OldStatus)
		}
		cm.Hub.PublishOrder(ev)
	}
}
