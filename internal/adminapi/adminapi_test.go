package adminapi

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
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

var (
	adminSetupOnce sync.Once
	adminApp       *app.Application
	adminServer    *echo.Echo
	adminJSON      = jsoniter.ConfigCompatibleWithStandardLibrary
)

const (
	testOprUsername = "backoffice"
	testOprPassword = "s3cret-pass"
)

// setupAdminServer boots the full stack once against a throwaway sqlite
// database and registers the admin routes behind the JWT gate. The operator
// account is seeded directly so tests never wait on the startup check.
func setupAdminServer(t *testing.T) {
	adminSetupOnce.Do(func() {
		// not t.TempDir: the sqlite file must outlive the first test
		workdir, err := os.MkdirTemp("", "elitesupps-admin-test")
		if err != nil {
			t.Fatalf("workdir: %v", err)
		}
		cfg := &config.AppConfig{
			System:   config.SysConfig{Appid: "EliteSuppsTest", Location: "UTC", Workdir: workdir},
			Web:      config.WebConfig{Host: "127.0.0.1", Port: 0, Secret: "admin-test-secret", JwtExpire: 1},
			Database: config.DBConfig{Type: "sqlite", Name: "shop_admin_test"},
			Logger:   config.LogConfig{Mode: "development"},
		}
		cfg.InitDirs()

		adminApp = app.NewApplication(cfg)
		adminApp.Init(cfg)

		server := webserver.Init(adminApp)
		Init()
		adminServer = server.Echo()

		opr := domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "Back Office",
			Username:  testOprUsername,
			Password:  common.Sha256HashWithSalt(testOprPassword, common.GetSecretSalt()),
			Level:     "super",
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}
		if err := adminApp.DB().Create(&opr).Error; err != nil {
			t.Fatalf("seed operator: %v", err)
		}
	})
}

func adminDo(t *testing.T, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	adminServer.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if len(rec.Body.Bytes()) > 0 {
		if err := adminJSON.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("unmarshal response %s: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, payload
}

func loginToken(t *testing.T) string {
	t.Helper()
	code, payload := adminDo(t, http.MethodPost, "/api/v1/admin/login", "",
		`{"username":"`+testOprUsername+`","password":"`+testOprPassword+`"}`)
	require.Equal(t, http.StatusOK, code)
	data, _ := payload["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func errCodeOf(payload map[string]interface{}) string {
	e, _ := payload["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func TestAdminLoginAndJwtGate(t *testing.T) {
	setupAdminServer(t)

	// no token, the gate rejects before any handler runs
	code, _ := adminDo(t, http.MethodGet, "/api/v1/admin/shop/products", "", "")
	assert.GreaterOrEqual(t, code, http.StatusBadRequest)

	// garbage token
	code, _ = adminDo(t, http.MethodGet, "/api/v1/admin/shop/products", "not-a-jwt", "")
	assert.GreaterOrEqual(t, code, http.StatusBadRequest)

	// wrong password
	code, payload := adminDo(t, http.MethodPost, "/api/v1/admin/login", "",
		`{"username":"`+testOprUsername+`","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", errCodeOf(payload))

	// real login opens the gate
	token := loginToken(t)
	code, _ = adminDo(t, http.MethodGet, "/api/v1/admin/shop/products", token, "")
	assert.Equal(t, http.StatusOK, code)

	code, payload = adminDo(t, http.MethodGet, "/api/v1/admin/profile", token, "")
	require.Equal(t, http.StatusOK, code)
	data, _ := payload["data"].(map[string]interface{})
	assert.Equal(t, testOprUsername, data["username"])
}

func TestCouponCodeUniqueIgnoresCase(t *testing.T) {
	setupAdminServer(t)
	token := loginToken(t)

	code, _ := adminDo(t, http.MethodPost, "/api/v1/admin/shop/coupons", token,
		`{"code":"ELITE10","discountPercentage":10}`)
	require.Equal(t, http.StatusOK, code)

	code, payload := adminDo(t, http.MethodPost, "/api/v1/admin/shop/coupons", token,
		`{"code":"elite10","discountPercentage":15}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "COUPON_EXISTS", errCodeOf(payload))
}

func TestOrderStatusTransitionRules(t *testing.T) {
	setupAdminServer(t)
	token := loginToken(t)

	order := &domain.Order{
		Items: domain.OrderItems{{ProductID: "p-whey", Name: "Elite Whey Protein", Price: 850, Quantity: 1}},
		CustomerInfo: domain.CustomerInfo{
			FullName:    "Ahmad E",
			Address:     "12 Corniche St, Alexandria",
			PhoneNumber: "+20 100 000 0000",
		},
		OrderSummary: domain.OrderSummary{Subtotal: 850, DeliveryFee: 85, TotalCost: 935},
	}
	id, err := adminApp.Orders().Place(context.Background(), order)
	require.NoError(t, err)

	// pending -> confirmed moves forward
	code, _ := adminDo(t, http.MethodPut, "/api/v1/admin/shop/orders/"+id+"/status", token,
		`{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, code)

	// backwards is refused
	code, payload := adminDo(t, http.MethodPut, "/api/v1/admin/shop/orders/"+id+"/status", token,
		`{"status":"pending"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_TRANSITION", errCodeOf(payload))

	// unknown labels are refused outright
	code, payload = adminDo(t, http.MethodPut, "/api/v1/admin/shop/orders/"+id+"/status", token,
		`{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_STATUS", errCodeOf(payload))

	// skipping ahead is fine, but delivered is terminal
	code, _ = adminDo(t, http.MethodPut, "/api/v1/admin/shop/orders/"+id+"/status", token,
		`{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, code)

	code, payload = adminDo(t, http.MethodPut, "/api/v1/admin/shop/orders/"+id+"/status", token,
		`{"status":"cancelled"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_TRANSITION", errCodeOf(payload))
}
