package database

import (
	"log"

	"github.com/campusops/events-core/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.WhitelistEntry{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one active registration per (event, user).
	// The service checks this in-transaction too; the index closes the gap
	// for writers that bypass the event row lock.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_active
		ON registrations (event_id, user_id)
		WHERE status <> 'CANCELLED'
	`)

	// One whitelist grant per user / per role per event
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_whitelist_user
		ON whitelist_entries (event_id, user_id)
		WHERE user_id IS NOT NULL
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_whitelist_role
		ON whitelist_entries (event_id, role)
		WHERE role IS NOT NULL
	`)

	return db
}
