package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

type productPayload struct {
	Name               string   `json:"name" validate:"required,min=1,max=200"`
	NameAr             string   `json:"nameAr" validate:"omitempty,max=200"`
	Price              float64  `json:"price" validate:"gte=0"`
	Category           string   `json:"category" validate:"required,max=64"`
	Image              string   `json:"image"`
	Description        string   `json:"description"`
	DescriptionAr      string   `json:"descriptionAr"`
	Flavors            []string `json:"flavors"`
	InStock            *bool    `json:"inStock"`
	IsOffer            bool     `json:"isOffer"`
	OriginalPrice      float64  `json:"originalPrice" validate:"gte=0"`
	DiscountPercentage int      `json:"discountPercentage" validate:"gte=0,lte=100"`
}

// registerProductRoutes registers catalog CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/shop/products", listProducts)
	webserver.ApiGET("/shop/products/export", exportProductsCsv)
	webserver.ApiGET("/shop/products/:id", getProduct)
	webserver.ApiPOST("/shop/products", createProduct)
	webserver.ApiPUT("/shop/products/:id", updateProduct)
	webserver.ApiDELETE("/shop/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Sorting: field and order, whitelist columns to avoid SQL injection
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	allowed := map[string]string{
		"name":       "name",
		"price":      "price",
		"category":   "category",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, ok := allowed[sortField]
	if !ok || sortCol == "" {
		sortCol = "created_at"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ? OR name_ar ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" && category != domain.CategoryAll {
		db = db.Where("category = ?", category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	var p domain.Product
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	inStock := true
	if payload.InStock != nil {
		inStock = *payload.InStock
	}

	p := domain.Product{
		Name:               strings.TrimSpace(payload.Name),
		NameAr:             strings.TrimSpace(payload.NameAr),
		Price:              payload.Price,
		Category:           strings.TrimSpace(payload.Category),
		Image:              strings.TrimSpace(payload.Image),
		Description:        payload.Description,
		DescriptionAr:      payload.DescriptionAr,
		Flavors:            domain.StringList(payload.Flavors),
		InStock:            inStock,
		IsOffer:            payload.IsOffer,
		OriginalPrice:      payload.OriginalPrice,
		DiscountPercentage: payload.DiscountPercentage,
	}
	if err := GetApp(c).Products().Add(c.Request().Context(), &p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	writeOprLog(c, "create_product", p.Name)
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	var p domain.Product
	if err := GetDB(c).Where("id = ?", c.Param("id")).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p.Name = strings.TrimSpace(payload.Name)
	p.NameAr = strings.TrimSpace(payload.NameAr)
	p.Price = payload.Price
	p.Category = strings.TrimSpace(payload.Category)
	p.Image = strings.TrimSpace(payload.Image)
	p.Description = payload.Description
	p.DescriptionAr = payload.DescriptionAr
	p.Flavors = domain.StringList(payload.Flavors)
	if payload.InStock != nil {
		p.InStock = *payload.InStock
	}
	p.IsOffer = payload.IsOffer
	p.OriginalPrice = payload.OriginalPrice
	p.DiscountPercentage = payload.DiscountPercentage

	if err := GetApp(c).Products().Update(c.Request().Context(), &p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	writeOprLog(c, "update_product", p.Name)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := GetApp(c).Products().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	writeOprLog(c, "delete_product", id)
	return ok(c, map[string]interface{}{"id": id})
}

type productCsvRow struct {
	ID        string  `csv:"id"`
	Name      string  `csv:"name"`
	NameAr    string  `csv:"name_ar"`
	Price     float64 `csv:"price"`
	Category  string  `csv:"category"`
	InStock   bool    `csv:"in_stock"`
	IsOffer   bool    `csv:"is_offer"`
	CreatedAt string  `csv:"created_at"`
}

// exportProductsCsv streams the whole catalog as a CSV download
func exportProductsCsv(c echo.Context) error {
	products, err := GetApp(c).Products().GetProducts(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	rows := make([]productCsvRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productCsvRow{
			ID:        p.ID,
			Name:      p.Name,
			NameAr:    p.NameAr,
			Price:     p.Price,
			Category:  p.Category,
			InStock:   p.InStock,
			IsOffer:   p.IsOffer,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(rows, c.Response())
}
