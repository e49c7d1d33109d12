package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/shop/dashboard", getDashboard)
}

// getDashboard summarizes the shop for the back-office landing page:
// order counts by status, delivered income and the mean order value.
func getDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	db := GetDB(c)

	var productCount, offerCount, couponCount, orderCount int64
	db.Model(&domain.Product{}).Count(&productCount)
	db.Model(&domain.Offer{}).Where("is_active = ?", true).Count(&offerCount)
	db.Model(&domain.Coupon{}).Where("is_active = ?", true).Count(&couponCount)
	db.Model(&domain.Order{}).Count(&orderCount)

	statusCounts := make(map[string]int64)
	type statusRow struct {
		Status string
		Total  int64
	}
	var rows []statusRow
	db.Model(&domain.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows)
	for _, row := range rows {
		statusCounts[row.Status] = row.Total
	}

	totalIncome, err := GetApp(c).Orders().TotalIncome(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute income", err.Error())
	}

	var totals []float64
	db.Model(&domain.Order{}).Pluck("total_cost", &totals)
	meanOrderValue := 0.0
	if len(totals) > 0 {
		meanOrderValue, _ = stats.Mean(totals)
	}

	return ok(c, map[string]interface{}{
		"products":         productCount,
		"active_offers":    offerCount,
		"active_coupons":   couponCount,
		"orders":           orderCount,
		"orders_by_status": statusCounts,
		"total_income":     totalIncome,
		"mean_order_value": meanOrderValue,
	})
}
