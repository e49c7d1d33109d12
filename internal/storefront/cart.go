package storefront

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/cart"
	"github.com/AhmadEkramy/elitesupps/internal/pricing"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

type addItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Flavor    string `json:"flavor"`
}

type updateItemPayload struct {
	Quantity int `json:"quantity"`
}

func registerCartRoutes() {
	webserver.PubGET("/cart", getCart)
	webserver.PubPOST("/cart/items", addCartItem)
	webserver.PubPOST("/cart/offers/:id", addOfferToCart)
	webserver.PubPUT("/cart/items/:id", updateCartItem)
	webserver.PubDELETE("/cart/items/:id", removeCartItem)
	webserver.PubDELETE("/cart", clearCart)
}

type cartView struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"totalItems"`
	Subtotal   float64     `json:"subtotal"`
	// preview figures: the cart view always shows the flat fee,
	// the checkout quote applies the free-shipping threshold
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

func viewOf(c *cart.Cart) cartView {
	subtotal := c.TotalPrice()
	return cartView{
		Items:       c.Lines(),
		TotalItems:  c.TotalItems(),
		Subtotal:    subtotal,
		DeliveryFee: pricing.CartPreviewFee,
		Total:       pricing.Round(subtotal) + pricing.CartPreviewFee,
	}
}

func getCart(c echo.Context) error {
	return ok(c, viewOf(sessionCart(c)))
}

// addCartItem looks the product up and runs it through the merge-or-append
// path. A product with flavors requires a flavor selection.
func addCartItem(c echo.Context) error {
	var payload addItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "productId is required", nil)
	}

	product, err := getApp(c).Products().GetByID(c.Request().Context(), payload.ProductID)
	if err != nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	if !product.InStock {
		return fail(c, http.StatusConflict, "OUT_OF_STOCK", "Product is out of stock", nil)
	}
	if len(product.Flavors) > 0 && payload.Flavor == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FLAVOR", "Please select a flavor", product.Flavors)
	}

	ledger := sessionCart(c)
	ledger.AddToCart(*product, payload.Flavor)
	return ok(c, viewOf(ledger))
}

// addOfferToCart materializes an active offer into its synthetic product and
// adds it like any other item.
func addOfferToCart(c echo.Context) error {
	ctx := c.Request().Context()
	offer, err := getApp(c).Offers().GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "OFFER_NOT_FOUND", "Offer not found", nil)
	}
	if !offer.IsActive || offer.Expired(time.Now()) {
		return fail(c, http.StatusConflict, "OFFER_INACTIVE", "Offer is no longer available", nil)
	}

	products, err := getApp(c).Products().GetProducts(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", nil)
	}

	synthetic := pricing.Materialize(offer, pricing.ResolverFromSlice(products))
	ledger := sessionCart(c)
	ledger.AddToCart(synthetic, "")
	return ok(c, viewOf(ledger))
}

func updateCartItem(c echo.Context) error {
	var payload updateItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", nil)
	}

	ledger := sessionCart(c)
	ledger.UpdateQuantity(c.Param("id"), payload.Quantity)
	return ok(c, viewOf(ledger))
}

// removeCartItem drops every flavor variant of the product id
func removeCartItem(c echo.Context) error {
	ledger := sessionCart(c)
	ledger.RemoveFromCart(c.Param("id"))
	return ok(c, viewOf(ledger))
}

func clearCart(c echo.Context) error {
	ledger := sessionCart(c)
	ledger.Clear()
	return ok(c, viewOf(ledger))
}
