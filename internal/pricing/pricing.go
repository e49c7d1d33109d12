package pricing

import (
	"math"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

// Delivery pricing in whole EGP. Checkout waives the flat fee once the
// subtotal exceeds the free-shipping threshold. The cart-only preview always
// displays the flat fee with no threshold; that divergence is a product
// decision carried over as-is, the checkout figure is authoritative.
const (
	DeliveryFeeFlat       = 85
	FreeShippingThreshold = 2500
	CartPreviewFee        = DeliveryFeeFlat
)

// Round converts to whole currency units; no fractional piasters are kept
// anywhere in a pricing breakdown.
func Round(v float64) int64 {
	return int64(math.Round(v))
}

// DeliveryFee applies the free-shipping threshold to a checkout subtotal
func DeliveryFee(subtotal float64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return DeliveryFeeFlat
}

// CouponDiscount computes the whole-unit discount a coupon grants on the
// subtotal. Coupons apply to the subtotal only, never per line, and never
// stack on top of offer pricing beyond what the offer already baked in.
func CouponDiscount(subtotal float64, coupon *domain.Coupon) int64 {
	if coupon == nil || coupon.DiscountPercentage <= 0 {
		return 0
	}
	return Round(subtotal * float64(coupon.DiscountPercentage) / 100)
}

// BuildQuote combines subtotal, delivery fee and an optional applied coupon
// into the immutable pricing breakdown persisted with the order.
func BuildQuote(subtotal float64, coupon *domain.Coupon) domain.OrderSummary {
	sub := Round(subtotal)
	fee := DeliveryFee(subtotal)
	discount := CouponDiscount(subtotal, coupon)
	summary := domain.OrderSummary{
		Subtotal:       sub,
		DeliveryFee:    fee,
		CouponDiscount: discount,
		TotalCost:      sub + fee - discount,
	}
	if coupon != nil {
		summary.CouponCode = coupon.Code
	}
	return summary
}
