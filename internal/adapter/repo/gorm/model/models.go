// Package model holds the gorm row types for the Postgres schema. The
// player snapshot is stored as one JSONB document so the schema does
// not chase every gameplay field; version and timestamps live in
// dedicated columns for guarded updates and retention queries.
package model

import "time"

type PlayerSnapshot struct {
	PlayerID  string `gorm:"primaryKey;size:64"`
	Snapshot  []byte `gorm:"type:jsonb;not null"`
	Version   int64  `gorm:"not null"`
	UpdatedAt time.Time
}

func (PlayerSnapshot) TableName() string { return "player_snapshots" }

type AdvanceExecution struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	PlayerID       string `gorm:"size:64;uniqueIndex:idx_advance_executions_player_key,priority:1"`
	IdempotencyKey string `gorm:"size:128;uniqueIndex:idx_advance_executions_player_key,priority:2"`
	RequestedTicks int32
	Seed           int64
	BatchID        string `gorm:"size:64"`
	Result         []byte `gorm:"type:jsonb"`
	AppliedAt      time.Time
}

func (AdvanceExecution) TableName() string { return "advance_executions" }

type ChangeBatch struct {
	BatchID   string    `gorm:"primaryKey;size:64"`
	PlayerID  string    `gorm:"size:64;index"`
	Ticks     int32     `gorm:"not null"`
	Reason    string    `gorm:"size:32"`
	Changes   []byte    `gorm:"type:jsonb"`
	AppliedAt time.Time `gorm:"index"`
}

func (ChangeBatch) TableName() string { return "change_batches" }
