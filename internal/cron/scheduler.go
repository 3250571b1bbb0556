package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Canyildiz1386/SultanPanelBot/internal/repository"
	"github.com/Canyildiz1386/SultanPanelBot/internal/smm"
)

// Scheduler runs the background sweeps: panel-status refresh for
// non-terminal orders and expiry of abandoned pending payments.
type Scheduler struct {
	cron     *cron.Cron
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	catalog  *smm.CachedCatalog
	logger   *zap.Logger
}

func New(
	orders *repository.OrderRepository,
	payments *repository.PaymentRepository,
	catalog *smm.CachedCatalog,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		orders:   orders,
		payments: payments,
		catalog:  catalog,
		logger:   logger,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")

	// Refresh stale order statuses - every 10 minutes
	s.cron.AddFunc("*/10 * * * *", func() {
		s.logger.Debug("Running: refresh stale orders")
		s.refreshStaleOrders()
	})

	// Expire abandoned pending payments - every 30 minutes
	s.cron.AddFunc("*/30 * * * *", func() {
		s.logger.Debug("Running: expire pending payments")
		s.expirePendingPayments()
	})

	s.cron.Start()
}

// Stop stops the scheduler and returns a context that is done once
// running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) refreshStaleOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orders, err := s.orders.FindStale(time.Now().Add(-5*time.Minute), 50)
	if err != nil {
		s.logger.Error("stale order query failed", zap.Error(err))
		return
	}

	for _, order := range orders {
		status, err := s.catalog.GetOrderStatus(ctx, order.OrderID)
		if err != nil {
			// Panel down; the next sweep will retry.
			s.logger.Warn("order status refresh failed",
				zap.Int64("order", order.OrderID), zap.Error(err))
			return
		}
		if status.Status != order.Status {
			if err := s.orders.UpdateStatus(order.OrderID, status.Status); err != nil {
				s.logger.Error("order status update failed",
					zap.Int64("order", order.OrderID), zap.Error(err))
			}
		}
	}
}

func (s *Scheduler) expirePendingPayments() {
	n, err := s.payments.ExpireOlderThan(time.Now().Add(-24 * time.Hour))
	if err != nil {
		s.logger.Error("pending payment expiry failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("expired abandoned payments", zap.Int64("count", n))
	}
}
