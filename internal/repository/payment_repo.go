package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// PaymentRepository handles top-up payment rows.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) FindByID(id string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Confirm flips a payment from pending to confirmed, recording which
// gateway's webhook won. Returns false when the row was not pending
// anymore (a duplicate webhook delivery), in which case the caller must
// not grant credit again.
func (r *PaymentRepository) Confirm(id, refID, gateway string, now time.Time) (bool, error) {
	res := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       models.PaymentStatusConfirmed,
			"ref_id":       refID,
			"gateway":      gateway,
			"confirmed_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkFailed records a processor-reported failure. Confirmed rows are
// left alone.
func (r *PaymentRepository) MarkFailed(id string) error {
	return r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Update("status", models.PaymentStatusFailed).Error
}

// ExpireOlderThan closes abandoned pending payments.
func (r *PaymentRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Update("status", models.PaymentStatusExpired)
	return res.RowsAffected, res.Error
}
