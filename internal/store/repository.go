package store

import (
	"context"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

// ProductStore handles catalog data access
type ProductStore interface {
	// GetProducts retrieves the whole catalog
	GetProducts(ctx context.Context) ([]domain.Product, error)

	// GetProductsByCategory retrieves products of one category;
	// domain.CategoryAll returns everything
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// GetOfferProducts retrieves products flagged as offers
	GetOfferProducts(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a single product
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Admin CRUD
	Add(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// OfferStore handles offer bundle data access
type OfferStore interface {
	// GetActiveOffers retrieves offers that are active and not yet expired
	GetActiveOffers(ctx context.Context) ([]domain.Offer, error)

	// GetOffers retrieves all offers (admin view)
	GetOffers(ctx context.Context) ([]domain.Offer, error)

	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	Add(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id string) error

	// DeactivateExpired flips is_active off for offers past their validity
	DeactivateExpired(ctx context.Context) (int64, error)
}

// CouponStore handles coupon data access
type CouponStore interface {
	GetCoupons(ctx context.Context) ([]domain.Coupon, error)

	// FindActiveByCode performs a case-insensitive exact match over active
	// coupons; returns gorm.ErrRecordNotFound on a miss
	FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error)

	Add(ctx context.Context, coupon *domain.Coupon) error
	Update(ctx context.Context, coupon *domain.Coupon) error
	Delete(ctx context.Context, id string) error
}

// OrderStore is the order record sink. The checkout engine depends only on
// Place; the admin surface uses the rest.
type OrderStore interface {
	// Place persists a finalized order and returns its id
	Place(ctx context.Context, order *domain.Order) (string, error)

	// GetOrders retrieves all orders, newest first
	GetOrders(ctx context.Context) ([]domain.Order, error)

	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error

	// TotalIncome sums totalCost over delivered orders
	TotalIncome(ctx context.Context) (int64, error)
}
