package adminapi

import (
	"net/http"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

type offerPayload struct {
	Title              string   `json:"title" validate:"required,min=1,max=200"`
	TitleAr            string   `json:"titleAr" validate:"omitempty,max=200"`
	Description        string   `json:"description"`
	DescriptionAr      string   `json:"descriptionAr"`
	DiscountPercentage int      `json:"discountPercentage" validate:"gte=0,lte=100"`
	ProductIds         []string `json:"productIds"`
	Price              float64  `json:"price" validate:"gte=0"`
	ImageURL           string   `json:"imageUrl"`
	IsActive           *bool    `json:"isActive"`
	ValidUntil         string   `json:"validUntil" validate:"required"`
}

func registerOfferRoutes() {
	webserver.ApiGET("/shop/offers", listOffers)
	webserver.ApiGET("/shop/offers/:id", getOffer)
	webserver.ApiPOST("/shop/offers", createOffer)
	webserver.ApiPUT("/shop/offers/:id", updateOffer)
	webserver.ApiDELETE("/shop/offers/:id", deleteOffer)
}

func listOffers(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Offer{})
	if active := c.QueryParam("active"); active == "true" {
		db = db.Where("is_active = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query offers", err.Error())
	}

	var offers []domain.Offer
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&offers).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query offers", err.Error())
	}
	return paged(c, offers, total, page, pageSize)
}

func getOffer(c echo.Context) error {
	var offer domain.Offer
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&offer).Error; err != nil {
		return fail(c, http.StatusNotFound, "OFFER_NOT_FOUND", "Offer not found", nil)
	}
	return ok(c, offer)
}

// applyOfferPayload maps a validated payload onto an offer record. The
// validity timestamp accepts any reasonable date format.
func applyOfferPayload(offer *domain.Offer, payload *offerPayload) error {
	validUntil, err := dateparse.ParseAny(payload.ValidUntil)
	if err != nil {
		return err
	}

	offer.Title = strings.TrimSpace(payload.Title)
	offer.TitleAr = strings.TrimSpace(payload.TitleAr)
	offer.Description = payload.Description
	offer.DescriptionAr = payload.DescriptionAr
	offer.DiscountPercentage = payload.DiscountPercentage
	offer.ProductIds = domain.StringList(payload.ProductIds)
	offer.Price = payload.Price
	offer.ImageURL = strings.TrimSpace(payload.ImageURL)
	offer.ValidUntil = validUntil
	if payload.IsActive != nil {
		offer.IsActive = *payload.IsActive
	} else {
		offer.IsActive = true
	}
	return nil
}

func createOffer(c echo.Context) error {
	var payload offerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse offer parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var offer domain.Offer
	if err := applyOfferPayload(&offer, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse validUntil date", err.Error())
	}

	if err := GetApp(c).Offers().Add(c.Request().Context(), &offer); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create offer", err.Error())
	}
	writeOprLog(c, "create_offer", offer.Title)
	return ok(c, offer)
}

func updateOffer(c echo.Context) error {
	var offer domain.Offer
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&offer).Error; err != nil {
		return fail(c, http.StatusNotFound, "OFFER_NOT_FOUND", "Offer not found", nil)
	}

	var payload offerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse offer parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if err := applyOfferPayload(&offer, &payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse validUntil date", err.Error())
	}

	if err := GetApp(c).Offers().Update(c.Request().Context(), &offer); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update offer", err.Error())
	}
	writeOprLog(c, "update_offer", offer.Title)
	return ok(c, offer)
}

func deleteOffer(c echo.Context) error {
	id := c.Param("id")
	if err := GetApp(c).Offers().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete offer", err.Error())
	}
	writeOprLog(c, "delete_offer", id)
	return ok(c, map[string]interface{}{"id": id})
}
