package storefront

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/checkout"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
	"github.com/AhmadEkramy/elitesupps/pkg/metrics"
)

type customerInfoPayload struct {
	FullName      string `json:"fullName"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phoneNumber"`
	PaymentMethod string `json:"paymentMethod"`
}

type couponPayload struct {
	Code string `json:"code"`
}

func registerCheckoutRoutes() {
	webserver.PubPOST("/checkout/info", submitCustomerInfo)
	webserver.PubPOST("/checkout/coupon", applyCoupon)
	webserver.PubDELETE("/checkout/coupon", resetCoupon)
	webserver.PubGET("/checkout/quote", getQuote)
	webserver.PubPOST("/checkout/place", placeOrder)
}

// submitCustomerInfo validates the contact form and moves the flow to the
// reviewing state where the order summary is shown.
func submitCustomerInfo(c echo.Context) error {
	var payload customerInfoPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer info", nil)
	}

	session := checkoutSession(c)
	err := session.SetCustomerInfo(domain.CustomerInfo{
		FullName:      payload.FullName,
		Address:       payload.Address,
		PhoneNumber:   payload.PhoneNumber,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Please fill in all required fields", nil)
	}

	return ok(c, map[string]interface{}{
		"state":   session.State(),
		"summary": session.Quote(),
	})
}

// applyCoupon checks the submitted code. An invalid or inactive code is a
// user-visible rejection, not an error; totals stay untouched.
func applyCoupon(c echo.Context) error {
	var payload couponPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse coupon code", nil)
	}

	session := checkoutSession(c)
	status, err := session.ApplyCoupon(c.Request().Context(), payload.Code)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "COUPON_ERROR", "Failed to check coupon", nil)
	}

	return ok(c, map[string]interface{}{
		"couponStatus": status,
		"state":        session.State(),
		"summary":      session.Quote(),
	})
}

// resetCoupon clears a previously applied coupon, mirroring the user editing
// the code field after a successful application.
func resetCoupon(c echo.Context) error {
	session := checkoutSession(c)
	session.ResetCoupon()
	return ok(c, map[string]interface{}{
		"couponStatus": session.CouponStatus(),
		"summary":      session.Quote(),
	})
}

func getQuote(c echo.Context) error {
	session := checkoutSession(c)
	return ok(c, map[string]interface{}{
		"state":   session.State(),
		"summary": session.Quote(),
	})
}

// placeOrder persists the reviewed order. On success the cart is cleared and
// the checkout session retired; on a persistence failure everything is kept
// so the user can simply resubmit.
func placeOrder(c echo.Context) error {
	session := checkoutSession(c)
	order, err := session.PlaceOrder(c.Request().Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotReviewing):
			return fail(c, http.StatusBadRequest, "NOT_REVIEWING", "Confirm your order information first", nil)
		case errors.Is(err, checkout.ErrEmptyCart):
			return fail(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty", nil)
		default:
			return fail(c, http.StatusServiceUnavailable, "ORDER_FAILED",
				"There was an error placing your order. Please try again.", nil)
		}
	}

	dropCheckoutSession(c)
	metrics.IncrCounter("shop_orders_placed", 1)
	if mailer != nil {
		mailer.OrderPlaced(order)
	}

	return ok(c, map[string]interface{}{
		"orderId": order.ID,
		"summary": order.OrderSummary,
		"status":  order.Status,
	})
}
