package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/cart"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/pricing"
	"github.com/AhmadEkramy/elitesupps/internal/store"
)

// Session states
const (
	StateEditing    = "editing"
	StateReviewing  = "reviewing"
	StateSubmitting = "submitting"
	StateCompleted  = "completed"
)

// Coupon application outcomes
const (
	CouponIdle    = "idle"
	CouponValid   = "valid"
	CouponInvalid = "invalid"
)

var (
	// ErrMissingFields blocks the editing -> reviewing transition
	ErrMissingFields = errors.New("checkout: full name, address and phone number are required")

	// ErrNotReviewing rejects order placement before the summary was reached
	ErrNotReviewing = errors.New("checkout: order summary not confirmed yet")

	// ErrEmptyCart rejects checkout over an empty ledger
	ErrEmptyCart = errors.New("checkout: cart is empty")
)

// Engine wires the pricing rules to the coupon lookup and the order sink.
// It owns no per-user state; each storefront session gets its own Session.
type Engine struct {
	coupons store.CouponStore
	orders  store.OrderStore
}

func NewEngine(coupons store.CouponStore, orders store.OrderStore) *Engine {
	return &Engine{coupons: coupons, orders: orders}
}

// CartSource resolves the live cart ledger for a checkout flow. Sessions
// resolve on every use rather than capturing a ledger at creation, so a
// registry that swept and recreated the cart never leaves the flow quoting
// a detached one.
type CartSource func() *cart.Cart

// Session is one checkout flow over a cart. It moves editing -> reviewing ->
// submitting -> completed; a persistence failure drops it back to reviewing
// with the cart intact so the user can resubmit.
type Session struct {
	mu           sync.Mutex
	engine       *Engine
	cart         CartSource
	state        string
	customer     domain.CustomerInfo
	coupon       *domain.Coupon
	couponStatus string
}

func (e *Engine) NewSession(source CartSource) *Session {
	return &Session{
		engine:       e,
		cart:         source,
		state:        StateEditing,
		couponStatus: CouponIdle,
	}
}

func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) CouponStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couponStatus
}

// SetCustomerInfo validates the contact form and enters the reviewing state.
// Missing required fields block the transition with a non-fatal error.
func (s *Session) SetCustomerInfo(info domain.CustomerInfo) error {
	info.FullName = strings.TrimSpace(info.FullName)
	info.Address = strings.TrimSpace(info.Address)
	info.PhoneNumber = strings.TrimSpace(info.PhoneNumber)
	if info.FullName == "" || info.Address == "" || info.PhoneNumber == "" {
		return ErrMissingFields
	}
	if info.PaymentMethod == "" {
		info.PaymentMethod = "cod"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = info
	if s.state == StateEditing {
		s.state = StateReviewing
	}
	return nil
}

// ApplyCoupon checks the submitted code against active coupons, case
// insensitively. An invalid or inactive code rejects the application and
// leaves the totals untouched. A valid check also advances to reviewing when
// the contact form is already complete.
func (s *Session) ApplyCoupon(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		s.ResetCoupon()
		return CouponIdle, nil
	}

	coupon, err := s.engine.coupons.FindActiveByCode(ctx, code)
	if err != nil {
		s.mu.Lock()
		s.coupon = nil
		s.couponStatus = CouponInvalid
		s.mu.Unlock()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CouponInvalid, nil
		}
		// lookup failure degrades to a rejection, never a fatal error
		zap.L().Warn("coupon lookup failed", zap.String("code", code), zap.Error(err))
		return CouponInvalid, nil
	}

	s.mu.Lock()
	s.coupon = coupon
	s.couponStatus = CouponValid
	if s.state == StateEditing && s.customer.FullName != "" {
		s.state = StateReviewing
	}
	s.mu.Unlock()
	return CouponValid, nil
}

// ResetCoupon clears a previously applied coupon, used when the user edits
// the code field after a successful application.
func (s *Session) ResetCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = nil
	s.couponStatus = CouponIdle
}

// Quote recomputes the pricing breakdown from the live cart subtotal and the
// currently applied coupon. Calling it repeatedly without mutations yields
// the same result.
func (s *Session) Quote() domain.OrderSummary {
	s.mu.Lock()
	coupon := s.coupon
	s.mu.Unlock()
	return pricing.BuildQuote(s.cart().TotalPrice(), coupon)
}

// PlaceOrder snapshots the cart and persists the order. On success the cart
// is cleared and the session completes. On a persistence failure the session
// returns to reviewing with cart and form state preserved; the caller may
// resubmit, nothing retries automatically.
func (s *Session) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	s.mu.Lock()
	if s.state != StateReviewing {
		s.mu.Unlock()
		return nil, ErrNotReviewing
	}
	s.state = StateSubmitting
	customer := s.customer
	coupon := s.coupon
	s.mu.Unlock()

	// resolve once so snapshot, pricing and the clear hit the same ledger
	ledger := s.cart()
	items := ledger.Snapshot()
	if len(items) == 0 {
		s.mu.Lock()
		s.state = StateReviewing
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		Items:        items,
		CustomerInfo: customer,
		OrderSummary: pricing.BuildQuote(ledger.TotalPrice(), coupon),
		Status:       domain.OrderStatusPending,
	}

	orderID, err := s.engine.orders.Place(ctx, order)
	if err != nil {
		s.mu.Lock()
		s.state = StateReviewing
		s.mu.Unlock()
		return nil, err
	}

	order.ID = orderID
	ledger.Clear()
	s.mu.Lock()
	s.state = StateCompleted
	s.mu.Unlock()

	zap.L().Info("order placed",
		zap.String("order_id", orderID),
		zap.Int64("total_cost", order.OrderSummary.TotalCost),
		zap.String("coupon", order.OrderSummary.CouponCode))
	return order, nil
}
