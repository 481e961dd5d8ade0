package catalog

import "github.com/angelmondragon/ownshop-backend/pkg/db/models"

// TodaysDealsCount is how many products the home page features.
const TodaysDealsCount = 4

// Published keeps only products visible on the public site, preserving order.
func Published(products []models.Product) []models.Product {
	return filter(products, func(p models.Product) bool { return p.Published })
}

// Superdeals lists published products that carry an original price.
func Superdeals(products []models.Product) []models.Product {
	return filter(products, func(p models.Product) bool { return p.Published && p.HasDiscount() })
}

// TodaysDeals is the first few published products.
func TodaysDeals(products []models.Product) []models.Product {
	published := Published(products)
	if len(published) > TodaysDealsCount {
		published = published[:TodaysDealsCount]
	}
	return published
}

// ByCategory lists published products for a category slug. The superdeals
// slug resolves to the discount view. ok is false for unknown slugs.
func ByCategory(products []models.Product, slug string) ([]models.Product, bool) {
	if slug == SuperdealsSlug {
		return Superdeals(products), true
	}
	cat, ok := ResolveCategory(slug)
	if !ok {
		return nil, false
	}
	return filter(products, func(p models.Product) bool {
		return p.Published && p.Category == cat.Name
	}), true
}

// BySubcategory lists published products for a category/subcategory slug pair.
func BySubcategory(products []models.Product, categorySlug, subSlug string) ([]models.Product, bool) {
	cat, sub, ok := ResolveSubcategory(categorySlug, subSlug)
	if !ok {
		return nil, false
	}
	return filter(products, func(p models.Product) bool {
		return p.Published && p.Category == cat.Name && p.Subcategory != nil && *p.Subcategory == sub.Name
	}), true
}

// FindByID looks a product up regardless of its published flag.
func FindByID(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func filter(products []models.Product, keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
