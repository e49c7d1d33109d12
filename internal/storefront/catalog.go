package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/pricing"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/category/:category", listProductsByCategory)
	webserver.PubGET("/products/offers", listOfferProducts)
	webserver.PubGET("/offers", listActiveOffers)
}

func listProducts(c echo.Context) error {
	products, err := getApp(c).Products().GetProducts(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", nil)
	}
	return ok(c, products)
}

func listProductsByCategory(c echo.Context) error {
	products, err := getApp(c).Products().GetProductsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", nil)
	}
	return ok(c, products)
}

func listOfferProducts(c echo.Context) error {
	products, err := getApp(c).Products().GetOfferProducts(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", nil)
	}
	return ok(c, products)
}

type offerView struct {
	domain.Offer
	TotalOriginal  float64  `json:"totalOriginal"`
	DiscountAmount int64    `json:"discountAmount"`
	FinalPrice     float64  `json:"finalPrice"`
	IncludedNames  []string `json:"includedNames"`
}

// listActiveOffers returns active, unexpired offers with their computed
// bundle pricing so the storefront can render the before/after prices.
func listActiveOffers(c echo.Context) error {
	ctx := c.Request().Context()
	offers, err := getApp(c).Offers().GetActiveOffers(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load offers", nil)
	}

	products, err := getApp(c).Products().GetProducts(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", nil)
	}
	resolve := pricing.ResolverFromSlice(products)

	views := make([]offerView, 0, len(offers))
	for i := range offers {
		breakdown := pricing.BundlePrice(&offers[i], resolve)
		finalPrice := breakdown.FinalPrice
		if offers[i].Price > 0 {
			finalPrice = offers[i].Price
		}
		views = append(views, offerView{
			Offer:          offers[i],
			TotalOriginal:  breakdown.TotalOriginal,
			DiscountAmount: breakdown.DiscountAmount,
			FinalPrice:     finalPrice,
			IncludedNames:  breakdown.IncludedNames,
		})
	}
	return ok(c, views)
}
