package models

import "time"

// DBChange is the outbox row written by the orders triggers. The change
// monitor polls unprocessed rows and turns them into feed events. OldStatus
// carries the pre-update status so subscribers can diff without a second
// fetch.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   string    `gorm:"type:varchar(32);not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	OldStatus  *string   `gorm:"type:varchar(20)"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
