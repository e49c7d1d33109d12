package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

// GormProductStore is the GORM implementation of ProductStore
type GormProductStore struct {
	db   *gorm.DB
	feed *Feed
}

func NewGormProductStore(db *gorm.DB, feed *Feed) *GormProductStore {
	return &GormProductStore{db: db, feed: feed}
}

func (s *GormProductStore) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (s *GormProductStore) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" || category == domain.CategoryAll {
		return s.GetProducts(ctx)
	}
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (s *GormProductStore) GetOfferProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("is_offer = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (s *GormProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormProductStore) Add(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = common.UUID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormProductStore) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *GormProductStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// notify pushes the full catalog snapshot to feed subscribers
func (s *GormProductStore) notify(ctx context.Context) {
	if s.feed == nil {
		return
	}
	products, err := s.GetProducts(ctx)
	if err != nil {
		zap.L().Warn("product feed snapshot failed", zap.Error(err))
		return
	}
	s.feed.publishProducts(products)
}
