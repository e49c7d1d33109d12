package storefront

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AhmadEkramy/elitesupps/internal/app"
	"github.com/AhmadEkramy/elitesupps/internal/cart"
	"github.com/AhmadEkramy/elitesupps/internal/checkout"
	"github.com/AhmadEkramy/elitesupps/internal/notify"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

const (
	sessionCookieName = "elitesupps_session"
	sessionIDKey      = "sid"
)

// checkout flows idle longer than this are swept along with their carts
const checkoutSessionTTL = 24 * time.Hour

type checkoutEntry struct {
	session  *checkout.Session
	lastSeen time.Time
}

var (
	cookieStore *sessions.CookieStore
	mailer      *notify.Mailer

	checkoutMu       sync.Mutex
	checkoutSessions = map[string]*checkoutEntry{}
)

// Init registers the public storefront routes; call once after webserver.Init
func Init(appx app.AppContext, m *notify.Mailer) {
	cookieStore = sessions.NewCookieStore([]byte(appx.Config().Web.Secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}
	mailer = m

	if sched := appx.Scheduler(); sched != nil {
		_, err := sched.AddFunc("@hourly", func() {
			if dropped := sweepCheckoutSessions(); dropped > 0 {
				zap.L().Info("swept idle checkout sessions", zap.Int("dropped", dropped))
			}
		})
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	registerCatalogRoutes()
	registerCartRoutes()
	registerCheckoutRoutes()
}

func getApp(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// sessionID reads or assigns the browser session id carried by the cart
// cookie. Each browser session owns exactly one cart ledger.
func sessionID(c echo.Context) string {
	session, _ := cookieStore.Get(c.Request(), sessionCookieName)
	sid, _ := session.Values[sessionIDKey].(string)
	if sid == "" {
		sid = common.UUID()
		session.Values[sessionIDKey] = sid
		_ = session.Save(c.Request(), c.Response())
	}
	return sid
}

func sessionCart(c echo.Context) *cart.Cart {
	return getApp(c).Carts().Get(sessionID(c))
}

// checkoutSession returns the checkout flow bound to this browser session,
// creating one on first use. The flow resolves its cart through the manager
// on every use, so a cart swept and recreated mid-flow is picked up instead
// of a detached ledger.
func checkoutSession(c echo.Context) *checkout.Session {
	sid := sessionID(c)
	carts := getApp(c).Carts()
	checkoutMu.Lock()
	defer checkoutMu.Unlock()
	e, ok := checkoutSessions[sid]
	if !ok {
		session := getApp(c).Checkout().NewSession(func() *cart.Cart {
			return carts.Get(sid)
		})
		e = &checkoutEntry{session: session}
		checkoutSessions[sid] = e
	}
	e.lastSeen = time.Now()
	return e.session
}

// dropCheckoutSession forgets a completed flow so the next checkout starts
// clean in the editing state.
func dropCheckoutSession(c echo.Context) {
	sid := sessionID(c)
	checkoutMu.Lock()
	defer checkoutMu.Unlock()
	delete(checkoutSessions, sid)
}

// sweepCheckoutSessions drops flows idle past the TTL, returns how many were
// dropped. Runs hourly next to the cart sweep so abandoned checkouts do not
// accumulate.
func sweepCheckoutSessions() int {
	checkoutMu.Lock()
	defer checkoutMu.Unlock()
	cutoff := time.Now().Add(-checkoutSessionTTL)
	dropped := 0
	for sid, e := range checkoutSessions {
		if e.lastSeen.Before(cutoff) {
			delete(checkoutSessions, sid)
			dropped++
		}
	}
	return dropped
}
