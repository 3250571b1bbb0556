package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// UserRepository handles all user database operations.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByNumID finds a user by Telegram account id.
func (r *UserRepository) FindByNumID(numID int64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("num_id = ?", numID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by surrogate primary key (ticket/agency owner lookups).
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateLanguage persists the user's preferred language tag.
func (r *UserRepository) UpdateLanguage(numID int64, lang string) error {
	return r.db.Model(&models.User{}).Where("num_id = ?", numID).
		Update("preferred_language", lang).Error
}

// Debit atomically takes amount from remaining_credit and adds it to
// used_credit. The WHERE clause is the floor: a user can never be driven
// below zero, even by concurrent debits.
func (r *UserRepository) Debit(numID int64, amount decimal.Decimal) error {
	res := r.db.Model(&models.User{}).
		Where("num_id = ? AND remaining_credit >= ?", numID, amount).
		Updates(map[string]interface{}{
			"remaining_credit": gorm.Expr("remaining_credit - ?", amount),
			"used_credit":      gorm.Expr("used_credit + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shop.ErrInsufficientCredit
	}
	return nil
}

// Refund reverses a Debit after a failed remote placement.
func (r *UserRepository) Refund(numID int64, amount decimal.Decimal) error {
	return r.db.Model(&models.User{}).Where("num_id = ?", numID).
		Updates(map[string]interface{}{
			"remaining_credit": gorm.Expr("remaining_credit + ?", amount),
			"used_credit":      gorm.Expr("used_credit - ?", amount),
		}).Error
}

// Credit adds to remaining_credit (top-ups, referral bonuses, chance circle).
func (r *UserRepository) Credit(numID int64, amount decimal.Decimal) error {
	return r.db.Model(&models.User{}).Where("num_id = ?", numID).
		Update("remaining_credit", gorm.Expr("remaining_credit + ?", amount)).Error
}

// CreditReferral adds a referral bonus to both the balance and the
// lifetime referral counter.
func (r *UserRepository) CreditReferral(numID int64, amount decimal.Decimal) error {
	return r.db.Model(&models.User{}).Where("num_id = ?", numID).
		Updates(map[string]interface{}{
			"remaining_credit": gorm.Expr("remaining_credit + ?", amount),
			"referral_credit":  gorm.Expr("referral_credit + ?", amount),
		}).Error
}

// GrantChance claims the daily bonus. The WHERE clause enforces the
// rolling 24h window, so two racing claims cannot both win. A NULL
// last_chance_time means the user has never claimed.
func (r *UserRepository) GrantChance(numID int64, reward decimal.Decimal, now time.Time) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("num_id = ? AND (last_chance_time IS NULL OR last_chance_time <= ?)", numID, now.Add(-24*time.Hour)).
		Updates(map[string]interface{}{
			"remaining_credit": gorm.Expr("remaining_credit + ?", reward),
			"last_chance_time": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// TouchTicketTime records the moment a ticket was filed (10 min cooldown).
func (r *UserRepository) TouchTicketTime(numID int64, now time.Time) error {
	return r.db.Model(&models.User{}).Where("num_id = ?", numID).
		Update("last_ticket_time", now).Error
}

// FindBroadcastTargets returns recipients for an admin broadcast.
func (r *UserRepository) FindBroadcastTargets(adminsOnly bool) ([]models.User, error) {
	var users []models.User
	db := r.db.Where("is_bot = ?", false)
	if adminsOnly {
		db = db.Where("is_admin = ?", true)
	}
	err := db.Find(&users).Error
	return users, err
}
