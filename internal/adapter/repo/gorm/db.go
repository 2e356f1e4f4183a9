package gormrepo

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"idleverse/internal/adapter/repo/gorm/model"
)

// OpenPostgres opens a connection with driver error translation on, so
// unique violations surface as gorm.ErrDuplicatedKey and map cleanly
// onto ports.ErrConflict.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the three persistence tables. The
// snapshot document absorbs gameplay schema churn, so declarative
// migration covers everything the columns need.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.PlayerSnapshot{},
		&model.AdvanceExecution{},
		&model.ChangeBatch{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
