package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

// GormOrderStore is the GORM implementation of OrderStore
type GormOrderStore struct {
	db   *gorm.DB
	feed *Feed
}

func NewGormOrderStore(db *gorm.DB, feed *Feed) *GormOrderStore {
	return &GormOrderStore{db: db, feed: feed}
}

func (s *GormOrderStore) Place(ctx context.Context, order *domain.Order) (string, error) {
	if order.ID == "" {
		order.ID = common.UUID()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return "", err
	}
	s.notify(ctx)
	return order.ID, nil
}

func (s *GormOrderStore) GetOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (s *GormOrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus mutates only the status label; items and pricing are immutable
func (s *GormOrderStore) UpdateStatus(ctx context.Context, id string, status string) error {
	err := s.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormOrderStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{}).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormOrderStore) TotalIncome(ctx context.Context) (int64, error) {
	var total *int64
	err := s.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("status = ?", domain.OrderStatusDelivered).
		Select("SUM(total_cost)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (s *GormOrderStore) notify(ctx context.Context) {
	if s.feed == nil {
		return
	}
	orders, err := s.GetOrders(ctx)
	if err != nil {
		zap.L().Warn("order feed snapshot failed", zap.Error(err))
		return
	}
	s.feed.publishOrders(orders)
}
