package database

import (
	"ClinicFlow/models"
	"context"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared gorm handle. Repositories use it directly.
var DB *gorm.DB

// InitDB opens the Postgres connection, tunes the pool, verifies it with a
// ping and migrates the schema.
func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	logMode := logger.Silent
	if os.Getenv("ENV") == "development" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres connection")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "unwrap sql.DB")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}

	if err := migrate(db); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}

	DB = db
	log.Println("database ready")
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.InventoryItem{},
		&models.Appointment{},
		&models.Bill{},
		&models.BillItem{},
	)
}
