package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// DiscountRepository handles discount code operations.
type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) Create(code string, percent int) error {
	return r.db.Create(&models.DiscountCode{Code: code, DiscountPercent: percent}).Error
}

func (r *DiscountRepository) FindByCode(code string) (*models.DiscountCode, error) {
	var d models.DiscountCode
	if err := r.db.Where("code = ?", code).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DiscountRepository) FindAll() ([]models.DiscountCode, error) {
	var codes []models.DiscountCode
	err := r.db.Order("code ASC").Find(&codes).Error
	return codes, err
}

func (r *DiscountRepository) Delete(code string) error {
	res := r.db.Where("code = ?", code).Delete(&models.DiscountCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shop.ErrNotFound
	}
	return nil
}
