package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/AhmadEkramy/elitesupps/internal/app"
)

const AppContextKey = "elitesupps_app"

var server *WebServer

// WebServer wraps echo with a public storefront group and a JWT protected
// admin group.
type WebServer struct {
	root  *echo.Echo
	pub   *echo.Group
	admin *echo.Group
	appx  app.AppContext
}

// CustomValidator wires go-playground validator into echo's c.Validate
type CustomValidator struct {
	validate *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

func Init(appx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	// inject application context for handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appx)
			return next(c)
		}
	})

	pub := e.Group("/api/v1")
	admin := e.Group("/api/v1/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appx.Config().Web.Secret),
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/v1/admin/login"
		},
	}))

	server = &WebServer{root: e, pub: pub, admin: admin, appx: appx}
	return server
}

func Instance() *WebServer {
	return server
}

// Start runs the http listener until it fails or is shut down
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.appx.Config().Web.Host, s.appx.Config().Web.Port)
	zap.S().Infof("starting web server on %s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Public route registry

func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

func PubPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.PUT(path, h, m...)
}

func PubDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.DELETE(path, h, m...)
}

// Admin route registry, everything here sits behind the JWT gate

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.DELETE(path, h, m...)
}
