package setup

import (
	"fmt"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// defaultSQLitePath is used when database.driver=sqlite and no uri is set.
const defaultSQLitePath = "tir-takip.db"

// InitGorm opens the SQL database selected by cfg.Driver.
func InitGorm(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.URI)
	case "postgres":
		dialector = postgres.Open(cfg.URI)
	case "sqlite":
		uri := cfg.URI
		if uri == "" {
			uri = defaultSQLitePath
		}
		dialector = sqlite.Open(uri)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// duplicates surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get generic database object: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("Connected to SQL database", zap.String("driver", cfg.Driver))
	return db, nil
}

// CloseGorm releases the connection pool.
func CloseGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting generic database object to close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing SQL database connection", zap.Error(err))
		return
	}
	logger.Info("SQL database connection closed.")
}
