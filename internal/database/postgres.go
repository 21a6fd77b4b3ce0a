package database

import (
	"fmt"
	"time"

	"hiring-api/config"
	"hiring-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB opens a GORM connection pool against the configured postgres
// instance.
func NewPostgresDB(cfg config.DBConfig, log *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Infof("Successfully connected to postgres at %s:%d, DB %s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}

// Migrate creates or updates the schema for all application tables. On
// postgres it additionally installs a partial unique index enforcing the
// one-active-application rule at the database level.
func Migrate(db *gorm.DB, log *zap.SugaredLogger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Application{},
		&models.Rubric{},
		&models.Score{},
		&models.Notification{},
		&models.PreEmploymentRequirement{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_one_active
			ON applications (applicant_id)
			WHERE status IN ('PENDING', 'APPROVED')`).Error
		if err != nil {
			return fmt.Errorf("failed to create one-active-application index: %w", err)
		}
	}

	log.Info("Database schema migrated")
	return nil
}
