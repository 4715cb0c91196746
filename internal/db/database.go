package db

import (
	"fmt"

	"github.com/marcochiappo/Crimcuts/config"
	appLogger "github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the configured database and sizes the connection pool.
// SQLite is held to a single open connection so writers never contend.
func Initialize(cfg *config.DatabaseConfig) error {
	dsn := cfg.DSN()

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		appLogger.Info("Connecting to database", appLogger.Fields{
			"driver":   cfg.Driver,
			"host":     cfg.Host,
			"port":     cfg.Port,
			"database": cfg.DBName,
			"user":     cfg.User,
		})
		dialector = postgres.Open(dsn)
	case "sqlite":
		appLogger.Info("Connecting to database", appLogger.Fields{
			"driver": cfg.Driver,
			"path":   cfg.SQLitePath,
		})
		dialector = sqlite.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := Open(dialector)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpen, maxIdle := 100, 10
	if cfg.Driver == "sqlite" {
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)

	DB = conn
	appLogger.Info("Database connection established successfully", appLogger.Fields{
		"max_idle_conns": maxIdle,
		"max_open_conns": maxOpen,
	})
	return nil
}

// Open applies the shared gorm settings to a dialector.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
