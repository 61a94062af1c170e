package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
)

func seedOutboxOrder(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	order := models.Order{
		ID:            id,
		UserID:        7,
		CarID:         1,
		TotalAmount:   100,
		Address:       "x",
		PreferredDate: "2026-09-01",
		PreferredTime: "10:00",
		Status:        models.StatusPending,
		PaymentMethod: models.PaymentCash,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestMonitorPublishesOutboxRows(t *testing.T) {
	db := setupTestDB(t)
	hub := feed.NewHub()
	seedOutboxOrder(t, db, "M1")

	old := string(models.StatusPending)
	require.NoError(t, db.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   "M1",
		ActionType: "INSERT",
		ChangedAt:  time.Now().Add(-time.Second),
	}).Error)
	require.NoError(t, db.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   "M1",
		ActionType: "UPDATE",
		OldStatus:  &old,
		ChangedAt:  time.Now(),
	}).Error)

	var events []feed.OrderEvent
	hub.Subscribe(models.Scope{Role: models.RoleAdmin},
		func(ev feed.OrderEvent) { events = append(events, ev) },
		func(ev feed.OrderEvent) { events = append(events, ev) })

	cm := NewChangeMonitor(db, hub)
	require.NoError(t, cm.checkChanges())

	require.Len(t, events, 2)
	assert.Equal(t, feed.EventOrderInsert, events[0].Type)
	assert.Equal(t, feed.EventOrderUpdate, events[1].Type)
	assert.Equal(t, models.StatusPending, events[1].OldStatus)
	assert.Equal(t, "M1", events[1].Order.ID)

	// Rows are marked processed; a second poll publishes nothing.
	require.NoError(t, cm.checkChanges())
	assert.Len(t, events, 2)
}

func TestMonitorSkipsForeignTables(t *testing.T) {
	db := setupTestDB(t)
	hub := feed.NewHub()

	require.NoError(t, db.Create(&models.DBChange{
		TableName:  "reviews",
		RecordID:   "1",
		ActionType: "INSERT",
		ChangedAt:  time.Now(),
	}).Error)

	var events int
	hub.Subscribe(models.Scope{Role: models.RoleAdmin},
		func(feed.OrderEvent) { events++ },
		func(feed.OrderEvent) { events++ })

	cm := NewChangeMonitor(db, hub)
	require.NoError(t, cm.checkChanges())
	assert.Zero(t, events)

	var change models.DBChange
	require.NoError(t, db.First(&change).Error)
	assert.True(t, change.Processed, "foreign rows still get marked processed")
}

func TestMonitorToleratesMissingOrder(t *testing.T) {
	db := setupTestDB(t)
	hub := feed.NewHub()

	require.NoError(t, db.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   "GONE",
		ActionType: "UPDATE",
		ChangedAt:  time.Now(),
	}).Error)

	cm := NewChangeMonitor(db, hub)
	require.NoError(t, cm.checkChanges())
}
