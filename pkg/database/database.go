package database

import (
	"fmt"

	"carhive/pkg/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New opens the gorm connection. Postgres when DB_HOST is configured,
// otherwise a local sqlite file so the service runs without infrastructure.
func New(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if dsn := cfg.PostgresDSN(); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
