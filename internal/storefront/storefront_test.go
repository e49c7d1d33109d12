package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmadEkramy/elitesupps/config"
	"github.com/AhmadEkramy/elitesupps/internal/app"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

var (
	setupOnce   sync.Once
	testApp     *app.Application
	testServer  *echo.Echo
	testJSON    = jsoniter.ConfigCompatibleWithStandardLibrary
	testProduct domain.Product
	testOffer   domain.Offer
)

// setupServer boots the whole stack once against a throwaway sqlite database
// and registers the public routes; tests drive it through httptest.
func setupServer(t *testing.T) {
	setupOnce.Do(func() {
		// not t.TempDir: the sqlite file must outlive the first test
		workdir, err := os.MkdirTemp("", "elitesupps-test")
		if err != nil {
			t.Fatalf("workdir: %v", err)
		}
		cfg := &config.AppConfig{
			System:   config.SysConfig{Appid: "EliteSuppsTest", Location: "UTC", Workdir: workdir},
			Web:      config.WebConfig{Host: "127.0.0.1", Port: 0, Secret: "test-secret", JwtExpire: 1},
			Database: config.DBConfig{Type: "sqlite", Name: "shop_test"},
			Logger:   config.LogConfig{Mode: "development"},
		}
		cfg.InitDirs()

		testApp = app.NewApplication(cfg)
		testApp.Init(cfg)

		server := webserver.Init(testApp)
		Init(testApp, nil)
		testServer = server.Echo()

		ctx := context.Background()
		testProduct = domain.Product{
			Name:    "Elite Whey Protein",
			Price:   850,
			Flavors: domain.StringList{"Chocolate", "Vanilla"},
			InStock: true,
		}
		if err := testApp.Products().Add(ctx, &testProduct); err != nil {
			t.Fatalf("seed product: %v", err)
		}

		testOffer = domain.Offer{
			Title:              "Starter Stack",
			ProductIds:         domain.StringList{testProduct.ID},
			DiscountPercentage: 10,
			IsActive:           true,
			ValidUntil:         time.Now().Add(24 * time.Hour),
		}
		if err := testApp.Offers().Add(ctx, &testOffer); err != nil {
			t.Fatalf("seed offer: %v", err)
		}
	})
}

// browser carries the session cookie between requests like a real client
type browser struct {
	t       *testing.T
	cookies []*http.Cookie
}

func (b *browser) do(method, path, body string) (int, map[string]interface{}) {
	b.t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	testServer.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}

	var payload map[string]interface{}
	if err := testJSON.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		b.t.Fatalf("unmarshal response %s: %v", rec.Body.String(), err)
	}
	return rec.Code, payload
}

func dataOf(payload map[string]interface{}) map[string]interface{} {
	data, _ := payload["data"].(map[string]interface{})
	return data
}

func TestCatalogEndpoints(t *testing.T) {
	setupServer(t)
	b := &browser{t: t}

	code, payload := b.do(http.MethodGet, "/api/v1/products", "")
	require.Equal(t, http.StatusOK, code)
	products, _ := payload["data"].([]interface{})
	require.NotEmpty(t, products)

	code, payload = b.do(http.MethodGet, "/api/v1/offers", "")
	require.Equal(t, http.StatusOK, code)
	offers, _ := payload["data"].([]interface{})
	require.NotEmpty(t, offers)
	first, _ := offers[0].(map[string]interface{})
	assert.Equal(t, 850.0, first["totalOriginal"])
	assert.Equal(t, 765.0, first["finalPrice"])
}

func TestCartFlowOverHTTP(t *testing.T) {
	setupServer(t)
	b := &browser{t: t}

	// flavored product without a flavor selection is rejected
	code, _ := b.do(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"`+testProduct.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, payload := b.do(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"`+testProduct.ID+`","flavor":"Chocolate"}`)
	require.Equal(t, http.StatusOK, code)
	view := dataOf(payload)
	assert.Equal(t, 1.0, view["totalItems"])
	assert.Equal(t, 850.0, view["subtotal"])
	// preview always shows the flat fee
	assert.Equal(t, 85.0, view["deliveryFee"])
	assert.Equal(t, 935.0, view["total"])

	// same product and flavor merges into one line
	code, payload = b.do(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"`+testProduct.ID+`","flavor":"Chocolate"}`)
	require.Equal(t, http.StatusOK, code)
	view = dataOf(payload)
	items, _ := view["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, 2.0, view["totalItems"])

	code, payload = b.do(http.MethodDelete, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, dataOf(payload)["totalItems"])

	code, _ = b.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"nope","flavor":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOfferToCartOverHTTP(t *testing.T) {
	setupServer(t)
	b := &browser{t: t}

	code, payload := b.do(http.MethodPost, "/api/v1/cart/offers/"+testOffer.ID, "")
	require.Equal(t, http.StatusOK, code)
	view := dataOf(payload)
	items, _ := view["items"].([]interface{})
	require.Len(t, items, 1)
	line, _ := items[0].(map[string]interface{})
	product, _ := line["product"].(map[string]interface{})
	assert.Equal(t, "offer-"+testOffer.ID, product["id"])
	assert.Equal(t, 765.0, product["price"])
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	setupServer(t)
	b := &browser{t: t}

	// three of the same line, subtotal 2550 crosses the free-shipping bar
	for i := 0; i < 3; i++ {
		code, _ := b.do(http.MethodPost, "/api/v1/cart/items",
			`{"productId":"`+testProduct.ID+`","flavor":"Vanilla"}`)
		require.Equal(t, http.StatusOK, code)
	}

	// placing before the contact form is rejected
	code, _ := b.do(http.MethodPost, "/api/v1/checkout/place", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = b.do(http.MethodPost, "/api/v1/checkout/info",
		`{"fullName":"Ahmad E","address":"Alexandria","phoneNumber":"+20 100 000 0000"}`)
	require.Equal(t, http.StatusOK, code)

	code, payload := b.do(http.MethodGet, "/api/v1/checkout/quote", "")
	require.Equal(t, http.StatusOK, code)
	summary, _ := dataOf(payload)["summary"].(map[string]interface{})
	assert.Equal(t, 2550.0, summary["subtotal"])
	assert.Equal(t, 0.0, summary["deliveryFee"])
	assert.Equal(t, 2550.0, summary["totalCost"])

	// unknown coupon is a rejection, not an error, and totals stay put
	code, payload = b.do(http.MethodPost, "/api/v1/checkout/coupon", `{"code":"NOPE"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "invalid", dataOf(payload)["couponStatus"])

	code, payload = b.do(http.MethodPost, "/api/v1/checkout/place", "")
	require.Equal(t, http.StatusOK, code)
	data := dataOf(payload)
	orderID, _ := data["orderId"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, "pending", data["status"])

	// cart is cleared after placement
	code, payload = b.do(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, dataOf(payload)["totalItems"])

	order, err := testApp.Orders().GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2550), order.OrderSummary.TotalCost)
	assert.Equal(t, "Ahmad E", order.CustomerInfo.FullName)
}

func TestSweepCheckoutSessions(t *testing.T) {
	checkoutMu.Lock()
	checkoutSessions["stale-sid"] = &checkoutEntry{lastSeen: time.Now().Add(-25 * time.Hour)}
	checkoutSessions["fresh-sid"] = &checkoutEntry{lastSeen: time.Now()}
	checkoutMu.Unlock()

	dropped := sweepCheckoutSessions()
	assert.GreaterOrEqual(t, dropped, 1)

	checkoutMu.Lock()
	defer checkoutMu.Unlock()
	_, stale := checkoutSessions["stale-sid"]
	_, fresh := checkoutSessions["fresh-sid"]
	assert.False(t, stale)
	assert.True(t, fresh)
}
