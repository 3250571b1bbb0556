package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/repository"
)

// MigrateAndSeed ensures required tables exist and inserts baseline rows
// for singleton tables. Safe to run on every startup.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedDefaults(db); err != nil {
		return fmt.Errorf("seed defaults failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Order{},
		&models.Ticket{},
		&models.AgencyRequest{},
		&models.DiscountCode{},
		&models.ConversionRate{},
		&models.Unit{},
		&models.Payment{},
	}
}

func seedDefaults(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Conversion rate self-heals to a default. The unit value is never
		// seeded: purchases stay blocked with a "not configured" error until
		// an admin sets it.
		var count int64
		if err := tx.Model(&models.ConversionRate{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.ConversionRate{Rate: repository.DefaultConversionRate}).Error
	})
}
