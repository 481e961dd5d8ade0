package store

import (
	"context"
	"strings"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductInput carries every product field a seller chooses.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Category      string
	Subcategory   *string
	ImageURL      string
	StoreName     string
}

// SetBanner replaces the banner wholesale.
func (s *Store) SetBanner(ctx context.Context, title, imageURL string) Outcome {
	return s.run(ctx, OpSetBanner, func(t *txn) {
		s.banner = models.Banner{Title: title, ImageURL: imageURL}
		t.changed = true
		t.succeed(nil)
	})
}

// AddProduct appends an unpublished draft with zeroed rating, reviews and sold.
func (s *Store) AddProduct(ctx context.Context, in ProductInput) Outcome {
	return s.run(ctx, OpAddProduct, func(t *txn) {
		product := models.Product{
			ID:            s.newID(),
			Name:          in.Name,
			Description:   in.Description,
			Price:         in.Price,
			OriginalPrice: in.OriginalPrice,
			Category:      in.Category,
			Subcategory:   in.Subcategory,
			ImageURL:      in.ImageURL,
			StoreName:     in.StoreName,
			Position:      len(s.products),
			CreatedAt:     s.now(),
		}
		product = product.Clone()
		if err := product.ValidatePricing(); err != nil {
			t.fail(alert("Product Not Added", capitalize(err.Error())+"."))
			return
		}

		s.products = append(s.products, product)
		t.changed = true
		t.outcome.ID = product.ID
		t.succeed(notice("Product Added", in.Name+" has been added as a draft."))
	})
}

// RemoveProduct deletes the product and any cart lines pointing at it.
func (s *Store) RemoveProduct(ctx context.Context, productID string) Outcome {
	return s.run(ctx, OpRemoveProduct, func(t *txn) {
		kept := s.products[:0]
		for _, p := range s.products {
			if p.ID == productID {
				t.changed = true
				continue
			}
			kept = append(kept, p)
		}
		s.products = kept
		if s.removeCartLineLocked(productID) {
			t.changed = true
		}
		t.outcome.ID = productID
		t.succeed(alert("Product Removed", "The product has been successfully removed."))
	})
}

// ToggleProductPublication flips the published flag. Unknown ids change nothing.
func (s *Store) ToggleProductPublication(ctx context.Context, productID string) Outcome {
	return s.run(ctx, OpTogglePublication, func(t *txn) {
		for i := range s.products {
			p := &s.products[i]
			if p.ID != productID {
				continue
			}
			p.Published = !p.Published
			t.changed = true
			t.outcome.ID = p.ID
			if p.Published {
				t.succeed(notice("Product Published", p.Name+" is now visible on the main site."))
			} else {
				t.succeed(notice("Product Unpublished", p.Name+" is now hidden from the main site."))
			}
			return
		}
		t.outcome.NotFound = true
		t.fail(nil)
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
