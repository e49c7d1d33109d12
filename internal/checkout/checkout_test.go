package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/cart"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/store"
)

type fakeCouponStore struct {
	coupons []domain.Coupon
	err     error
}

func (f *fakeCouponStore) GetCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return f.coupons, nil
}

func (f *fakeCouponStore) FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.coupons {
		c := &f.coupons[i]
		if c.IsActive && strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCouponStore) Add(ctx context.Context, coupon *domain.Coupon) error    { return nil }
func (f *fakeCouponStore) Update(ctx context.Context, coupon *domain.Coupon) error { return nil }
func (f *fakeCouponStore) Delete(ctx context.Context, id string) error             { return nil }

type fakeOrderStore struct {
	placed  []*domain.Order
	failing bool
}

func (f *fakeOrderStore) Place(ctx context.Context, order *domain.Order) (string, error) {
	if f.failing {
		return "", errors.New("sink unavailable")
	}
	f.placed = append(f.placed, order)
	return "order-1", nil
}

func (f *fakeOrderStore) GetOrders(ctx context.Context) ([]domain.Order, error)      { return nil, nil }
func (f *fakeOrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (f *fakeOrderStore) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeOrderStore) TotalIncome(ctx context.Context) (int64, error)            { return 0, nil }

var (
	_ store.CouponStore = (*fakeCouponStore)(nil)
	_ store.OrderStore  = (*fakeOrderStore)(nil)
)

// source pins a session to one ledger, the registry-free common case
func source(c *cart.Cart) CartSource {
	return func() *cart.Cart { return c }
}

func testCart() *cart.Cart {
	c := cart.New()
	whey := domain.Product{ID: "p-whey", Name: "Elite Whey Protein", Price: 850, InStock: true}
	c.AddToCart(whey, "Chocolate")
	c.AddToCart(whey, "Chocolate")
	c.AddToCart(whey, "Chocolate")
	return c
}

func customer() domain.CustomerInfo {
	return domain.CustomerInfo{
		FullName:    "Ahmad E",
		Address:     "12 Corniche St, Alexandria",
		PhoneNumber: "+20 100 000 0000",
	}
}

func TestSetCustomerInfoRequiresAllFields(t *testing.T) {
	engine := NewEngine(&fakeCouponStore{}, &fakeOrderStore{})
	session := engine.NewSession(source(testCart()))

	info := customer()
	info.PhoneNumber = "   "
	err := session.SetCustomerInfo(info)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, StateEditing, session.State())

	require.NoError(t, session.SetCustomerInfo(customer()))
	assert.Equal(t, StateReviewing, session.State())
}

func TestPlaceOrderBeforeReviewingRejected(t *testing.T) {
	engine := NewEngine(&fakeCouponStore{}, &fakeOrderStore{})
	session := engine.NewSession(source(testCart()))

	_, err := session.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrNotReviewing)
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	engine := NewEngine(&fakeCouponStore{}, &fakeOrderStore{})
	session := engine.NewSession(source(cart.New()))
	require.NoError(t, session.SetCustomerInfo(customer()))

	_, err := session.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateReviewing, session.State())
}

func TestApplyCouponValidAndInvalid(t *testing.T) {
	coupons := &fakeCouponStore{coupons: []domain.Coupon{
		{ID: "c-1", Code: "ELITE15", DiscountPercentage: 15, IsActive: true},
		{ID: "c-2", Code: "OLD10", DiscountPercentage: 10, IsActive: false},
	}}
	engine := NewEngine(coupons, &fakeOrderStore{})
	session := engine.NewSession(source(testCart()))
	require.NoError(t, session.SetCustomerInfo(customer()))

	// match is case-insensitive
	status, err := session.ApplyCoupon(context.Background(), "elite15")
	require.NoError(t, err)
	assert.Equal(t, CouponValid, status)

	quote := session.Quote()
	assert.Equal(t, int64(2550), quote.Subtotal)
	assert.Equal(t, int64(383), quote.CouponDiscount)
	assert.Equal(t, "ELITE15", quote.CouponCode)

	// inactive code rejects and drops the previous coupon
	status, err = session.ApplyCoupon(context.Background(), "OLD10")
	require.NoError(t, err)
	assert.Equal(t, CouponInvalid, status)
	assert.Equal(t, int64(0), session.Quote().CouponDiscount)
}

func TestApplyCouponLookupFailureDegradesToInvalid(t *testing.T) {
	coupons := &fakeCouponStore{err: errors.New("db down")}
	engine := NewEngine(coupons, &fakeOrderStore{})
	session := engine.NewSession(source(testCart()))

	status, err := session.ApplyCoupon(context.Background(), "ELITE15")
	require.NoError(t, err)
	assert.Equal(t, CouponInvalid, status)
}

func TestResetCoupon(t *testing.T) {
	coupons := &fakeCouponStore{coupons: []domain.Coupon{
		{ID: "c-1", Code: "ELITE15", DiscountPercentage: 15, IsActive: true},
	}}
	engine := NewEngine(coupons, &fakeOrderStore{})
	session := engine.NewSession(source(testCart()))

	_, err := session.ApplyCoupon(context.Background(), "ELITE15")
	require.NoError(t, err)
	require.Equal(t, CouponValid, session.CouponStatus())

	session.ResetCoupon()
	assert.Equal(t, CouponIdle, session.CouponStatus())
	assert.Equal(t, int64(0), session.Quote().CouponDiscount)
}

func TestPlaceOrderFullFlow(t *testing.T) {
	orders := &fakeOrderStore{}
	engine := NewEngine(&fakeCouponStore{}, orders)
	ledger := testCart()
	session := engine.NewSession(source(ledger))
	require.NoError(t, session.SetCustomerInfo(customer()))

	// 3 x 850 = 2550, above the free-shipping threshold
	quote := session.Quote()
	assert.Equal(t, int64(2550), quote.Subtotal)
	assert.Equal(t, int64(0), quote.DeliveryFee)
	assert.Equal(t, int64(2550), quote.TotalCost)

	order, err := session.PlaceOrder(context.Background())
	require.NoError(t, err)
	require.Len(t, orders.placed, 1)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2550), order.OrderSummary.TotalCost)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, "Ahmad E", order.CustomerInfo.FullName)

	assert.Equal(t, StateCompleted, session.State())
	assert.Empty(t, ledger.Lines())
}

func TestPlaceOrderFailureKeepsCartAndAllowsRetry(t *testing.T) {
	orders := &fakeOrderStore{failing: true}
	engine := NewEngine(&fakeCouponStore{}, orders)
	ledger := testCart()
	session := engine.NewSession(source(ledger))
	require.NoError(t, session.SetCustomerInfo(customer()))

	_, err := session.PlaceOrder(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateReviewing, session.State())
	assert.Equal(t, 3, ledger.TotalItems())

	// nothing retries automatically; a second explicit submit succeeds
	orders.failing = false
	order, err := session.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, StateCompleted, session.State())
	assert.Empty(t, ledger.Lines())
}

func TestSessionFollowsRecreatedCart(t *testing.T) {
	orders := &fakeOrderStore{}
	engine := NewEngine(&fakeCouponStore{}, orders)
	carts := cart.NewManager()

	session := engine.NewSession(func() *cart.Cart { return carts.Get("sid") })
	carts.Get("sid").AddToCart(domain.Product{ID: "p-old", Name: "Old", Price: 100, InStock: true}, "")
	require.NoError(t, session.SetCustomerInfo(customer()))

	// the manager drops the ledger and hands out a fresh one on next access
	carts.Drop("sid")
	live := carts.Get("sid")
	live.AddToCart(domain.Product{ID: "p-new", Name: "New", Price: 200, InStock: true}, "")

	quote := session.Quote()
	assert.Equal(t, int64(200), quote.Subtotal)

	order, err := session.PlaceOrder(context.Background())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p-new", order.Items[0].ProductID)
	assert.Empty(t, live.Lines())
}
