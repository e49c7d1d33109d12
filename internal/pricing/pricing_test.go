package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

func TestDeliveryFeeThreshold(t *testing.T) {
	assert.Equal(t, int64(85), DeliveryFee(2000))
	// the threshold is strict, 2500 exactly still pays the flat fee
	assert.Equal(t, int64(85), DeliveryFee(2500))
	assert.Equal(t, int64(0), DeliveryFee(2500.5))
	assert.Equal(t, int64(0), DeliveryFee(2600))
}

func TestCouponDiscount(t *testing.T) {
	coupon := &domain.Coupon{Code: "SAVE15", DiscountPercentage: 15}
	assert.Equal(t, int64(150), CouponDiscount(1000, coupon))

	// half units round to nearest whole EGP
	assert.Equal(t, int64(128), CouponDiscount(850, coupon))

	assert.Equal(t, int64(0), CouponDiscount(1000, nil))
	assert.Equal(t, int64(0), CouponDiscount(1000, &domain.Coupon{Code: "ZERO"}))
}

func TestBuildQuote(t *testing.T) {
	summary := BuildQuote(2000, nil)
	assert.Equal(t, int64(2000), summary.Subtotal)
	assert.Equal(t, int64(85), summary.DeliveryFee)
	assert.Equal(t, int64(0), summary.CouponDiscount)
	assert.Equal(t, int64(2085), summary.TotalCost)
	assert.Empty(t, summary.CouponCode)

	coupon := &domain.Coupon{Code: "ELITE10", DiscountPercentage: 10}
	summary = BuildQuote(2600, coupon)
	assert.Equal(t, int64(2600), summary.Subtotal)
	assert.Equal(t, int64(0), summary.DeliveryFee)
	assert.Equal(t, int64(260), summary.CouponDiscount)
	assert.Equal(t, int64(2340), summary.TotalCost)
	assert.Equal(t, "ELITE10", summary.CouponCode)
}

func bundleCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p-a", Name: "Product A", Price: 100, InStock: true},
		{ID: "p-b", Name: "Product B", Price: 200, InStock: true},
	}
}

func TestBundlePrice(t *testing.T) {
	offer := &domain.Offer{
		ID:                 "o-1",
		Title:              "Starter Stack",
		ProductIds:         domain.StringList{"p-a", "p-b"},
		DiscountPercentage: 10,
	}
	breakdown := BundlePrice(offer, ResolverFromSlice(bundleCatalog()))

	assert.Equal(t, 300.0, breakdown.TotalOriginal)
	assert.Equal(t, int64(30), breakdown.DiscountAmount)
	assert.Equal(t, 270.0, breakdown.FinalPrice)
	assert.Equal(t, []string{"Product A", "Product B"}, breakdown.IncludedNames)
}

func TestBundlePriceSkipsUnresolvableIds(t *testing.T) {
	offer := &domain.Offer{
		ID:                 "o-1",
		ProductIds:         domain.StringList{"p-a", "p-gone", "p-b"},
		DiscountPercentage: 10,
	}
	breakdown := BundlePrice(offer, ResolverFromSlice(bundleCatalog()))

	assert.Equal(t, 300.0, breakdown.TotalOriginal)
	assert.Equal(t, []string{"Product A", "Product B"}, breakdown.IncludedNames)
}

func TestMaterializeComputedPrice(t *testing.T) {
	offer := &domain.Offer{
		ID:                 "o-1",
		Title:              "Starter Stack",
		Description:        "Everything to get going",
		ProductIds:         domain.StringList{"p-a", "p-b"},
		DiscountPercentage: 10,
	}
	p := Materialize(offer, ResolverFromSlice(bundleCatalog()))

	assert.Equal(t, "offer-o-1", p.ID)
	assert.Equal(t, "Starter Stack", p.Name)
	assert.Equal(t, 270.0, p.Price)
	assert.Equal(t, domain.CategoryOffer, p.Category)
	assert.True(t, p.IsOffer)
	assert.True(t, p.InStock)
	assert.Contains(t, p.Description, "Includes: Product A, Product B")
}

func TestMaterializeFlatPriceWins(t *testing.T) {
	offer := &domain.Offer{
		ID:                 "o-2",
		Title:              "Flat Deal",
		Price:              199,
		ProductIds:         domain.StringList{"p-a", "p-b"},
		DiscountPercentage: 10,
	}
	p := Materialize(offer, ResolverFromSlice(bundleCatalog()))
	require.Equal(t, 199.0, p.Price)
}

func TestRound(t *testing.T) {
	assert.Equal(t, int64(128), Round(127.5))
	assert.Equal(t, int64(127), Round(127.4))
	assert.Equal(t, int64(0), Round(0))
}
