package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/api/validators"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func GetCart(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, st.Cart())
	}
}

// AddCartItem adds the store's current copy of a product to the cart.
func AddCartItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, found := st.Product(payload.ProductID)
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		out := st.AddToCart(r.Context(), product, payload.Quantity)
		cart := st.Cart()
		writeOutcome(w, r, logg, out, http.StatusOK, &cart)
	}
}

// UpdateCartItem replaces a line's quantity; zero or less removes the line.
func UpdateCartItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := st.UpdateCartQuantity(r.Context(), chi.URLParam(r, "productId"), *payload.Quantity)
		cart := st.Cart()
		writeOutcome(w, r, logg, out, http.StatusOK, &cart)
	}
}

func RemoveCartItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		out := st.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
		cart := st.Cart()
		writeOutcome(w, r, logg, out, http.StatusOK, &cart)
	}
}
