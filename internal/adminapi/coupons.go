package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

type couponPayload struct {
	Code               string `json:"code" validate:"required,min=1,max=64"`
	DiscountPercentage int    `json:"discountPercentage" validate:"gte=1,lte=100"`
	IsActive           *bool  `json:"isActive"`
}

func registerCouponRoutes() {
	webserver.ApiGET("/shop/coupons", listCoupons)
	webserver.ApiPOST("/shop/coupons", createCoupon)
	webserver.ApiPUT("/shop/coupons/:id", updateCoupon)
	webserver.ApiDELETE("/shop/coupons/:id", deleteCoupon)
}

func listCoupons(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Coupon{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query coupons", err.Error())
	}

	var coupons []domain.Coupon
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&coupons).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query coupons", err.Error())
	}
	return paged(c, coupons, total, page, pageSize)
}

func createCoupon(c echo.Context) error {
	var payload couponPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse coupon parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	code := strings.TrimSpace(payload.Code)

	// coupon codes are unique case-insensitively
	var exists int64
	GetDB(c).Model(&domain.Coupon{}).Where("LOWER(code) = ?", strings.ToLower(code)).Count(&exists)
	if exists > 0 {
		return fail(c, http.StatusConflict, "COUPON_EXISTS", "Coupon code already exists", nil)
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	coupon := domain.Coupon{
		Code:               code,
		DiscountPercentage: payload.DiscountPercentage,
		IsActive:           isActive,
	}
	if err := GetApp(c).Coupons().Add(c.Request().Context(), &coupon); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create coupon", err.Error())
	}
	writeOprLog(c, "create_coupon", coupon.Code)
	return ok(c, coupon)
}

func updateCoupon(c echo.Context) error {
	var coupon domain.Coupon
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&coupon).Error; err != nil {
		return fail(c, http.StatusNotFound, "COUPON_NOT_FOUND", "Coupon not found", nil)
	}

	var payload couponPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse coupon parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	code := strings.TrimSpace(payload.Code)
	if !strings.EqualFold(code, coupon.Code) {
		var exists int64
		GetDB(c).Model(&domain.Coupon{}).
			Where("LOWER(code) = ? AND id != ?", strings.ToLower(code), coupon.ID).
			Count(&exists)
		if exists > 0 {
			return fail(c, http.StatusConflict, "COUPON_EXISTS", "Coupon code already exists", nil)
		}
	}

	coupon.Code = code
	coupon.DiscountPercentage = payload.DiscountPercentage
	if payload.IsActive != nil {
		coupon.IsActive = *payload.IsActive
	}

	if err := GetApp(c).Coupons().Update(c.Request().Context(), &coupon); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update coupon", err.Error())
	}
	writeOprLog(c, "update_coupon", coupon.Code)
	return ok(c, coupon)
}

func deleteCoupon(c echo.Context) error {
	id := c.Param("id")
	if err := GetApp(c).Coupons().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete coupon", err.Error())
	}
	writeOprLog(c, "delete_coupon", id)
	return ok(c, map[string]interface{}{"id": id})
}
