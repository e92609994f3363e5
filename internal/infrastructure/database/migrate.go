package database

import (
	"fmt"

	"census-otp-service/internal/domain/models"
	Logger "census-otp-service/pkg/logger"

	"gorm.io/gorm"
)

// Migrate applies the schema according to mode: "drop" recreates every
// table, anything else only adds missing tables and columns.
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "drop":
		Logger.Warning("running in drop mode, all tables will be dropped and recreated")
		return DropAndRecreateTables(db)
	case "", "auto":
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}
}

// AutoMigrate creates missing tables and columns for every model
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("database migration completed")
	return nil
}

// DropAndRecreateTables drops every model table and migrates again
func DropAndRecreateTables(db *gorm.DB) error {
	all := models.All()
	// Children first so foreign keys never block the drop.
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table %T: %w", all[i], err)
		}
	}
	return AutoMigrate(db)
}
