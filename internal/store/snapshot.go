package store

import (
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Snapshot is a deep copy of the store state safe to hand to callers.
type Snapshot struct {
	User              *models.User                  `json:"user"`
	IsAdmin           bool                          `json:"isAdmin"`
	IsSeller          bool                          `json:"isSeller"`
	IsUserLoading     bool                          `json:"isUserLoading"`
	Products          []models.Product              `json:"products"`
	IsProductsLoading bool                          `json:"isProductsLoading"`
	Cart              []models.CartItem             `json:"cart"`
	Banner            models.Banner                 `json:"banner"`
	Verifications     []models.BusinessVerification `json:"verifications"`
}

// CartSummary totals a cart.
type CartSummary struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
}

// Summarize computes item count and subtotal from cart line snapshots.
func Summarize(items []models.CartItem) CartSummary {
	summary := CartSummary{Items: items, Subtotal: decimal.Zero}
	if summary.Items == nil {
		summary.Items = []models.CartItem{}
	}
	for _, item := range items {
		summary.ItemCount += item.Quantity
		summary.Subtotal = summary.Subtotal.Add(item.LineTotal())
	}
	return summary
}

// Snapshot returns the current state. Password hashes are never included.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		IsUserLoading:     !s.activated || s.signInsInFlight > 0,
		Products:          make([]models.Product, len(s.products)),
		IsProductsLoading: s.isProductsLoading,
		Cart:              make([]models.CartItem, len(s.cart)),
		Banner:            s.banner,
		Verifications:     make([]models.BusinessVerification, len(s.verifications)),
	}
	if u := s.currentUserLocked(); u != nil {
		user := u.Clone()
		user.PasswordHash = ""
		snap.User = &user
		snap.IsAdmin = user.Role == enums.RoleAdmin
		snap.IsSeller = user.Role == enums.RoleSeller
	}
	for i, p := range s.products {
		snap.Products[i] = p.Clone()
	}
	for i, item := range s.cart {
		item.Product = item.Product.Clone()
		snap.Cart[i] = item
	}
	for i, v := range s.verifications {
		snap.Verifications[i] = v.Clone()
	}
	return snap
}

// Cart returns the cart with totals.
func (s *Store) Cart() CartSummary {
	return Summarize(s.Snapshot().Cart)
}

// Roster returns the known users without password hashes.
func (s *Store) Roster() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := cloneUsers(s.roster)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out
}

// CurrentUser returns the signed-in user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	snap := s.Snapshot()
	if snap.User == nil {
		return models.User{}, false
	}
	return *snap.User, true
}

// Product looks up one product regardless of its published flag.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}
