package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// TicketRepository handles support ticket operations.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(t *models.Ticket) error {
	return r.db.Create(t).Error
}

func (r *TicketRepository) FindByID(id uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) FindOpen() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("status = ?", "open").Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) Close(id uint) error {
	return r.db.Model(&models.Ticket{}).Where("id = ?", id).
		Update("status", "closed").Error
}

// AgencyRepository handles agency request operations.
type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) Create(req *models.AgencyRequest) error {
	return r.db.Create(req).Error
}

func (r *AgencyRepository) FindByID(id uint) (*models.AgencyRequest, error) {
	var req models.AgencyRequest
	if err := r.db.Where("id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *AgencyRepository) FindPending() ([]models.AgencyRequest, error) {
	var reqs []models.AgencyRequest
	err := r.db.Where("status = ?", "pending").Find(&reqs).Error
	return reqs, err
}

// Resolve sets the final status. The row is kept for audit; the pending
// list filters it out.
func (r *AgencyRepository) Resolve(id uint, status string) error {
	return r.db.Model(&models.AgencyRequest{}).Where("id = ?", id).
		Update("status", status).Error
}
