package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

// GormOfferStore is the GORM implementation of OfferStore
type GormOfferStore struct {
	db   *gorm.DB
	feed *Feed
}

func NewGormOfferStore(db *gorm.DB, feed *Feed) *GormOfferStore {
	return &GormOfferStore{db: db, feed: feed}
}

func (s *GormOfferStore) GetActiveOffers(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("valid_until > ?", time.Now()).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (s *GormOfferStore) GetOffers(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&offers).Error
	return offers, err
}

func (s *GormOfferStore) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	var offer domain.Offer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (s *GormOfferStore) Add(ctx context.Context, offer *domain.Offer) error {
	if offer.ID == "" {
		offer.ID = common.UUID()
	}
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(offer).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormOfferStore) Update(ctx context.Context, offer *domain.Offer) error {
	offer.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(offer).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormOfferStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Offer{}).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormOfferStore) DeactivateExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Where("is_active = ?", true).
		Where("valid_until <= ?", time.Now()).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.notify(ctx)
	}
	return res.RowsAffected, nil
}

func (s *GormOfferStore) notify(ctx context.Context) {
	if s.feed == nil {
		return
	}
	offers, err := s.GetOffers(ctx)
	if err != nil {
		zap.L().Warn("offer feed snapshot failed", zap.Error(err))
		return
	}
	s.feed.publishOffers(offers)
}
