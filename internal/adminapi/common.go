package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AhmadEkramy/elitesupps/internal/app"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

// Init registers all admin routes; call once after webserver.Init
func Init() {
	registerAuthRoutes()
	registerProductRoutes()
	registerOfferRoutes()
	registerCouponRoutes()
	registerOrderRoutes()
	registerDashboardRoutes()
	registerStreamRoutes()
}

// GetApp extracts the application context injected by the web layer
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB returns the request scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"error": apiError{Code: code, Message: message, Details: details},
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     rows,
		"total":    total,
		"page":     page,
		"per_page": pageSize,
	})
}

func parsePagination(c echo.Context) (page int, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	} else if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func handleValidationError(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", fields)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
}

// writeOprLog records a back-office action for the audit trail
func writeOprLog(c echo.Context, action, desc string) {
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   currentOprName(c),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
