package db

import (
	"github.com/marcochiappo/Crimcuts/internal/app/model"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Shop{},
		&model.Barber{},
		&model.Rating{},
		&model.HaircutPhoto{},
	}
}

// Migrate creates or updates the schema on the global connection.
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs AutoMigrate against conn.
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", logger.Fields{
		"models_count": len(models),
	})
	return nil
}
