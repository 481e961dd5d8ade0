package catalog

import (
	"regexp"
	"strings"
)

// SuperdealsSlug selects discounted products instead of a named category.
const SuperdealsSlug = "superdeals"

// Category is a top-level browse node.
type Category struct {
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is a second-level browse node.
type Subcategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var (
	slugDropRe     = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSpaceRe    = regexp.MustCompile(`[\s-]+`)
	categoryLayout = []struct {
		name string
		subs []string
	}{
		{"Women's Fashion", []string{"Dresses", "Tops & Tees", "Coats & Jackets"}},
		{"Men's Fashion", []string{"Shirts", "Jackets", "Pants"}},
		{"Phones & Telecommunications", []string{"Mobile Phones", "Phone Accessories"}},
		{"Computer, Office & Security", []string{"Laptops", "Keyboards & Mice", "Storage"}},
		{"Consumer Electronics", []string{"Headphones", "Smart Watches", "Cameras"}},
		{"Jewelry & Watches", []string{"Watches", "Necklaces"}},
		{"Home, Pet & Appliances", []string{"Kitchen", "Pet Supplies", "Home Decor"}},
		{"Bags & Shoes", []string{"Sneakers", "Backpacks"}},
		{"Toys, Kids & Babies", []string{"Building Toys", "Baby Care"}},
		{"Outdoor Fun & Sports", []string{"Camping", "Fitness"}},
		{"Beauty, Health & Hair", []string{"Skin Care", "Hair Care"}},
		{"Automobiles & Motorcycles", []string{"Car Electronics", "Motorcycle Gear"}},
		{"Home Improvement & Lighting", []string{"Lamps", "Smart Lighting"}},
		{"Tools & Industrial", []string{"Power Tools", "Hand Tools"}},
	}
	categories = buildCategories()
)

// Slugify lowercases name, drops punctuation, and joins words with hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugDropRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func buildCategories() []Category {
	out := make([]Category, 0, len(categoryLayout))
	for _, entry := range categoryLayout {
		cat := Category{Name: entry.name, Slug: Slugify(entry.name)}
		for _, sub := range entry.subs {
			cat.Subcategories = append(cat.Subcategories, Subcategory{Name: sub, Slug: Slugify(sub)})
		}
		out = append(out, cat)
	}
	return out
}

// Categories returns a copy of the category tree.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, cat := range categories {
		cat.Subcategories = append([]Subcategory(nil), cat.Subcategories...)
		out[i] = cat
	}
	return out
}

// ResolveCategory maps a category slug to its display name.
func ResolveCategory(slug string) (Category, bool) {
	for _, cat := range categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return Category{}, false
}

// ResolveSubcategory maps a category and subcategory slug pair to their nodes.
func ResolveSubcategory(categorySlug, subSlug string) (Category, Subcategory, bool) {
	cat, ok := ResolveCategory(categorySlug)
	if !ok {
		return Category{}, Subcategory{}, false
	}
	for _, sub := range cat.Subcategories {
		if sub.Slug == subSlug {
			return cat, sub, true
		}
	}
	return Category{}, Subcategory{}, false
}
