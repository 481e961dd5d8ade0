package store

import (
	"context"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
)

// AddToCart adds quantity of product, merging with an existing line. The
// caller must be signed in and the product published. Quantities below one
// count as one.
func (s *Store) AddToCart(ctx context.Context, product models.Product, quantity int) Outcome {
	if quantity < 1 {
		quantity = 1
	}
	return s.run(ctx, OpAddToCart, func(t *txn) {
		if s.currentUserLocked() == nil {
			t.fail(alert("Please sign in", "You need to be signed in to add items to your cart."))
			t.redirect(enums.RouteSignIn)
			return
		}
		if !product.Published {
			t.fail(alert("Product Not Available", "This product is currently not available for purchase."))
			return
		}

		t.changed = true
		if idx := s.cartIndexLocked(product.ID); idx >= 0 {
			s.cart[idx].Quantity += quantity
		} else {
			s.cart = append(s.cart, models.CartItem{
				ProductID: product.ID,
				Quantity:  quantity,
				Product:   product.Clone(),
			})
		}
		t.outcome.ID = product.ID
		t.succeed(notice("Added to cart", product.Name+" has been added to your cart."))
	})
}

// RemoveFromCart drops the line for productID; absent lines are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) Outcome {
	return s.run(ctx, OpRemoveFromCart, func(t *txn) {
		t.changed = s.removeCartLineLocked(productID)
		t.succeed(nil)
	})
}

// UpdateCartQuantity replaces a line's quantity; zero or less removes it.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID string, quantity int) Outcome {
	return s.run(ctx, OpUpdateCartQuantity, func(t *txn) {
		t.succeed(nil)
		if quantity <= 0 {
			t.changed = s.removeCartLineLocked(productID)
			return
		}
		if idx := s.cartIndexLocked(productID); idx >= 0 {
			s.cart[idx].Quantity = quantity
			t.changed = true
		}
	})
}

func (s *Store) cartIndexLocked(productID string) int {
	for i, item := range s.cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeCartLineLocked(productID string) bool {
	idx := s.cartIndexLocked(productID)
	if idx < 0 {
		return false
	}
	s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	return true
}
