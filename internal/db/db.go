package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// Migrate creates the schema plus the constraints gorm tags cannot
// express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Professional{},
		&models.Administrator{},
		&models.Treatment{},
		&models.TreatmentProfessional{},
		&models.Consultation{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto-migrating: %w", err)
	}

	// one SCHEDULED consultation per professional and instant
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_consultations_professional_slot
		ON consultations (professional_id, date_time)
		WHERE status = 'SCHEDULED'
	`).Error; err != nil {
		return fmt.Errorf("creating slot index: %w", err)
	}

	if err := db.Exec(`
		UPDATE consultations
		SET status = 'SCHEDULED'
		WHERE status IS NULL OR status = ''
	`).Error; err != nil {
		return fmt.Errorf("backfilling status: %w", err)
	}

	return nil
}
