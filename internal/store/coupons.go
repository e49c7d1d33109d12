package store

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

// GormCouponStore is the GORM implementation of CouponStore
type GormCouponStore struct {
	db   *gorm.DB
	feed *Feed
}

func NewGormCouponStore(db *gorm.DB, feed *Feed) *GormCouponStore {
	return &GormCouponStore{db: db, feed: feed}
}

func (s *GormCouponStore) GetCoupons(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (s *GormCouponStore) FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := s.db.WithContext(ctx).
		Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code))).
		Where("is_active = ?", true).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (s *GormCouponStore) Add(ctx context.Context, coupon *domain.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = common.UUID()
	}
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(coupon).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormCouponStore) Update(ctx context.Context, coupon *domain.Coupon) error {
	coupon.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(coupon).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormCouponStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Coupon{}).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormCouponStore) notify(ctx context.Context) {
	if s.feed == nil {
		return
	}
	coupons, err := s.GetCoupons(ctx)
	if err != nil {
		zap.L().Warn("coupon feed snapshot failed", zap.Error(err))
		return
	}
	s.feed.publishCoupons(coupons)
}
