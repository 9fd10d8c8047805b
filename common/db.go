package common

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDb opens the SQLite database named by uri. A "sqlite://" or
// "sqlite:" prefix is accepted and stripped.
func ConnectDb(uri string, log *zap.Logger) (*gorm.DB, error) {
	dsn := strings.TrimPrefix(strings.TrimPrefix(uri, "sqlite://"), "sqlite:")
	if dsn == "" {
		return nil, fmt.Errorf("database uri not set")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Error("opening sqlite db failed", zap.String("dsn", dsn), zap.Error(err))
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	log.Debug("opened sqlite db", zap.String("dsn", dsn))
	return db, nil
}

// CloseDb releases the connection pool behind db.
func CloseDb(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
