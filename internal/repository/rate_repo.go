package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// DefaultConversionRate is the Toman-per-Dollar rate used until an admin
// sets one.
var DefaultConversionRate = decimal.NewFromInt(60000)

// RateRepository handles the two singleton config rows. Their missing-row
// behavior is deliberately asymmetric: the conversion rate self-heals to a
// default, the unit value fails loudly until configured.
type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

// ConversionRate returns the Toman-per-Dollar rate, creating the default
// row on first read.
func (r *RateRepository) ConversionRate() (decimal.Decimal, error) {
	var row models.ConversionRate
	err := r.db.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.ConversionRate{Rate: DefaultConversionRate}
		if err := r.db.Create(&row).Error; err != nil {
			return decimal.Zero, err
		}
		return row.Rate, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.Rate, nil
}

// SetConversionRate updates (or creates) the singleton rate row.
func (r *RateRepository) SetConversionRate(rate decimal.Decimal) error {
	var row models.ConversionRate
	err := r.db.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.ConversionRate{Rate: rate}).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&row).Update("rate", rate).Error
}

// UnitCents returns the price of one credit in Dollar cents.
func (r *RateRepository) UnitCents() (int, error) {
	var row models.Unit
	err := r.db.Where("name = ?", "default").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, shop.ErrPricingNotConfigured
	}
	if err != nil {
		return 0, err
	}
	if row.Value <= 0 {
		return 0, shop.ErrPricingNotConfigured
	}
	return row.Value, nil
}

// SetUnitCents sets the price of one credit in Dollar cents.
func (r *RateRepository) SetUnitCents(cents int) error {
	var row models.Unit
	err := r.db.Where("name = ?", "default").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.Unit{Name: "default", Value: cents}).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&row).Update("value", cents).Error
}
