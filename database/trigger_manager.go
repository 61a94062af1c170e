package database

import (
	"gorm.io/gorm"

	"github.com/lam3a/rush-backend/utils"
)

// Triggers that feed the db_changes outbox from order writes. UPDATE
// captures the old status so the change monitor can hand subscribers a
// diffable event without a second read.
var orderTriggers = []string{
	`DROP TRIGGER IF EXISTS orders_after_insert`,
	`CREATE TRIGGER orders_after_insert
	AFTER INSERT ON orders
	FOR EACH ROW
	INSERT INTO db_changes (table_name, record_id, action_type, old_status, changed_at, processed)
	VALUES ('orders', NEW.id, 'INSERT', NULL, NOW(), 0)`,
	`DROP TRIGGER IF EXISTS orders_after_update`,
	`CREATE TRIGGER orders_after_update
	AFTER UPDATE ON orders
	FOR EACH ROW
	INSERT INTO db_changes (table_name, record_id, action_type, old_status, changed_at, processed)
	VALUES ('orders', NEW.id, 'UPDATE', OLD.status, NOW(), 0)`,
}

// ExecuteTriggers installs the orders outbox triggers. Safe to run on every
// startup.
func ExecuteTriggers(db *gorm.DB) error {
	for _, stmt := range orderTriggers {
		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error executing trigger statement: %v", err)
			return err
		}
	}

	var triggers []struct {
		Trigger string
		Event   string
		Table   string
		Timing  string
	}

	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.Trigger, t.Timing, t.Event, t.Table)
	}

	return nil
}
