package adminapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
	"github.com/AhmadEkramy/elitesupps/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/login", adminLogin)
	webserver.ApiGET("/profile", adminProfile)
}

// adminLogin verifies an operator account and issues the JWT that gates
// every other admin route.
func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var opr domain.SysOpr
	if err := GetDB(c).Where("username = ?", payload.Username).First(&opr).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if opr.Password != hashed || opr.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	cfg := GetApp(c).Config()
	expire := time.Duration(cfg.Web.JwtExpire) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"uid":      opr.ID,
		"username": opr.Username,
		"level":    opr.Level,
		"exp":      time.Now().Add(expire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", nil)
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).Update("last_login", time.Now())
	writeOprLog(c, "login", "operator login")
	zap.L().Info("operator login", zap.String("username", opr.Username), zap.String("ip", c.RealIP()))

	return ok(c, map[string]interface{}{
		"token":    signed,
		"username": opr.Username,
		"level":    opr.Level,
	})
}

func adminProfile(c echo.Context) error {
	var opr domain.SysOpr
	if err := GetDB(c).Where("username = ?", currentOprName(c)).First(&opr).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Operator not found", nil)
	}
	opr.Password = ""
	return ok(c, opr)
}

// currentOprName reads the operator name from the verified JWT
func currentOprName(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	name, _ := claims["username"].(string)
	return name
}
