package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

type orderStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/shop/orders", listOrders)
	webserver.ApiGET("/shop/orders/export", exportOrdersXlsx)
	webserver.ApiGET("/shop/orders/:id", getOrder)
	webserver.ApiPUT("/shop/orders/:id/status", updateOrderStatus)
	webserver.ApiDELETE("/shop/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Order{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("full_name ILIKE ? OR phone_number ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			db = db.Where("LOWER(full_name) LIKE ? OR phone_number LIKE ?", "%"+strings.ToLower(q)+"%", "%"+q+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	var orders []domain.Order
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, orders, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	var order domain.Order
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}
	return ok(c, order)
}

// updateOrderStatus moves an order along the fulfillment flow. Only the
// status label mutates; items and pricing stay frozen. The forward-only
// convention is enforced here at the admin surface, not in the data layer.
func updateOrderStatus(c echo.Context) error {
	var order domain.Order
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}

	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	status := strings.TrimSpace(payload.Status)
	if !domain.ValidOrderStatus(status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", status)
	}
	if !domain.AllowedStatusTransition(order.Status, status) {
		return fail(c, http.StatusConflict, "INVALID_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, status), nil)
	}

	if err := GetApp(c).Orders().UpdateStatus(c.Request().Context(), order.ID, status); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order status", err.Error())
	}
	writeOprLog(c, "update_order_status", order.ID+" -> "+status)
	return ok(c, map[string]interface{}{"id": order.ID, "status": status})
}

func deleteOrder(c echo.Context) error {
	id := c.Param("id")
	if err := GetApp(c).Orders().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", err.Error())
	}
	writeOprLog(c, "delete_order", id)
	return ok(c, map[string]interface{}{"id": id})
}

// exportOrdersXlsx produces a spreadsheet of all orders for back-office use
func exportOrdersXlsx(c echo.Context) error {
	orders, err := GetApp(c).Orders().GetOrders(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	xlsx := excelize.NewFile()
	const sheet = "Orders"
	xlsx.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Customer", "Phone", "Address", "Payment", "Items",
		"Subtotal", "Delivery Fee", "Coupon Discount", "Total", "Coupon", "Status", "Created At"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		xlsx.SetCellValue(sheet, cell, h)
	}

	for i, order := range orders {
		row := i + 2
		items := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			label := fmt.Sprintf("%s x%d", item.Name, item.Quantity)
			if item.SelectedFlavor != "" {
				label += " (" + item.SelectedFlavor + ")"
			}
			items = append(items, label)
		}
		values := []interface{}{
			order.ID,
			order.CustomerInfo.FullName,
			order.CustomerInfo.PhoneNumber,
			order.CustomerInfo.Address,
			order.CustomerInfo.PaymentMethod,
			strings.Join(items, "; "),
			order.OrderSummary.Subtotal,
			order.OrderSummary.DeliveryFee,
			order.OrderSummary.CouponDiscount,
			order.OrderSummary.TotalCost,
			order.OrderSummary.CouponCode,
			order.Status,
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for j, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+j, row)
			xlsx.SetCellValue(sheet, cell, v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}
