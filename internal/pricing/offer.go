package pricing

import (
	"strings"

	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

// SyntheticOfferPrefix namespaces materialized offer ids away from real
// product ids
const SyntheticOfferPrefix = "offer-"

// BundleBreakdown is the computed pricing of an offer bundle
type BundleBreakdown struct {
	TotalOriginal  float64
	DiscountAmount int64
	FinalPrice     float64
	IncludedNames  []string
}

// ProductResolver looks up catalog products by id
type ProductResolver func(id string) (*domain.Product, bool)

// ResolverFromSlice adapts an already fetched product list into a resolver
func ResolverFromSlice(products []domain.Product) ProductResolver {
	index := make(map[string]*domain.Product, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
	}
	return func(id string) (*domain.Product, bool) {
		p, ok := index[id]
		return p, ok
	}
}

// BundlePrice sums the prices of the offer's resolvable products and applies
// the percentage discount. Product ids missing from the catalog are skipped
// silently, not treated as errors.
func BundlePrice(offer *domain.Offer, resolve ProductResolver) BundleBreakdown {
	var breakdown BundleBreakdown
	for _, pid := range offer.ProductIds {
		p, ok := resolve(pid)
		if !ok {
			continue
		}
		breakdown.TotalOriginal += p.Price
		breakdown.IncludedNames = append(breakdown.IncludedNames, p.Name)
	}
	breakdown.DiscountAmount = Round(breakdown.TotalOriginal * float64(offer.DiscountPercentage) / 100)
	breakdown.FinalPrice = breakdown.TotalOriginal - float64(breakdown.DiscountAmount)
	return breakdown
}

// Materialize builds the synthetic product an offer becomes when added to a
// cart. The flat offer price wins over the computed bundle price when set.
// The result flows through the normal add-to-cart path like any product.
func Materialize(offer *domain.Offer, resolve ProductResolver) domain.Product {
	breakdown := BundlePrice(offer, resolve)

	price := breakdown.FinalPrice
	if offer.Price > 0 {
		price = offer.Price
	}

	description := offer.Description
	if len(breakdown.IncludedNames) > 0 {
		description += "\nIncludes: " + strings.Join(breakdown.IncludedNames, ", ")
	}

	descriptionAr := offer.DescriptionAr
	if descriptionAr == "" {
		descriptionAr = offer.Description
	}

	nameAr := offer.TitleAr
	if nameAr == "" {
		nameAr = offer.Title
	}

	return domain.Product{
		ID:                 SyntheticOfferPrefix + offer.ID,
		Name:               offer.Title,
		NameAr:             nameAr,
		Price:              price,
		Category:           domain.CategoryOffer,
		Image:              offer.ImageURL,
		Description:        description,
		DescriptionAr:      descriptionAr,
		Flavors:            domain.StringList{},
		InStock:            true,
		IsOffer:            true,
		DiscountPercentage: offer.DiscountPercentage,
	}
}
