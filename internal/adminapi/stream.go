package adminapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/store"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func registerStreamRoutes() {
	webserver.ApiGET("/shop/orders/stream", streamOrders)
	webserver.ApiGET("/shop/products/stream", streamProducts)
}

// streamOrders pushes the full order list to the admin view as server-sent
// events whenever the order store mutates. The local list is replaced
// wholesale on each event; disconnecting unsubscribes the handler.
func streamOrders(c echo.Context) error {
	feed := GetApp(c).Feed()

	updates := make(chan []domain.Order, 4)
	handler := func(orders []domain.Order) {
		select {
		case updates <- orders:
		default:
			// drop when the client is slow, the next snapshot supersedes it
		}
	}
	if err := feed.OnOrdersChange(handler); err != nil {
		return fail(c, http.StatusInternalServerError, "STREAM_ERROR", "Failed to subscribe to order feed", err.Error())
	}
	defer func() {
		if err := feed.Unsubscribe(store.TopicOrdersChanged, handler); err != nil {
			zap.L().Warn("order stream unsubscribe failed", zap.Error(err))
		}
	}()

	// initial snapshot so the view renders without waiting for a mutation
	if orders, err := GetApp(c).Orders().GetOrders(c.Request().Context()); err == nil {
		handler(orders)
	}

	return serveSSE(c, func(w http.ResponseWriter, flush func()) error {
		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case orders := <-updates:
				if err := writeSSEEvent(w, "orders", orders); err != nil {
					return err
				}
				flush()
			}
		}
	})
}

// streamProducts is the catalog counterpart of streamOrders
func streamProducts(c echo.Context) error {
	feed := GetApp(c).Feed()

	updates := make(chan []domain.Product, 4)
	handler := func(products []domain.Product) {
		select {
		case updates <- products:
		default:
		}
	}
	if err := feed.OnProductsChange(handler); err != nil {
		return fail(c, http.StatusInternalServerError, "STREAM_ERROR", "Failed to subscribe to product feed", err.Error())
	}
	defer func() {
		if err := feed.Unsubscribe(store.TopicProductsChanged, handler); err != nil {
			zap.L().Warn("product stream unsubscribe failed", zap.Error(err))
		}
	}()

	if products, err := GetApp(c).Products().GetProducts(c.Request().Context()); err == nil {
		handler(products)
	}

	return serveSSE(c, func(w http.ResponseWriter, flush func()) error {
		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case products := <-updates:
				if err := writeSSEEvent(w, "products", products); err != nil {
					return err
				}
				flush()
			}
		}
	})
}

func serveSSE(c echo.Context, loop func(w http.ResponseWriter, flush func()) error) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()
	return loop(w, w.Flush)
}

func writeSSEEvent(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
