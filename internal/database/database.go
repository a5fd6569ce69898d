package database

import (
	"inventra-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers.
// TranslateError turns driver unique-violation errors into gorm.ErrDuplicatedKey,
// which the lifecycle service relies on for the one-active-assignment guard.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

// Migrate runs migrations for all models and installs the partial unique
// index guaranteeing at most one Active assignment per asset. The index is
// the authoritative guard; the lifecycle pre-check is only a fast path.
// The statement is valid on both Postgres and SQLite, so tests exercise it.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.Assignment{},
		&models.AssignmentHistory{},
		&models.MaintenanceRecord{},
	); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_one_active ON assignments (asset_id) WHERE status = 'Active'`,
	).Error
}
