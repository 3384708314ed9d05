package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sharath018/secret-santa-backend/config"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the Postgres pool. Driver errors are translated so unique
// violations surface as gorm.ErrDuplicatedKey.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)

	level := logger.Warn
	if cfg.DBVerbose {
		level = logger.Info
	}
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	log.Printf("✅ Connected to Postgres at %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&models.Event{},
		&models.Participant{},
		&models.Assignment{},
		&models.Message{},
		&auditlog.AuditLog{},
		&notification.NotificationLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("✅ Database migrations completed")
	return nil
}
