package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/api/validators"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
	"github.com/angelmondragon/ownshop-backend/pkg/pagination"
)

const (
	dealsSuperdeals = "superdeals"
	dealsToday      = "today"
)

type productListResponse struct {
	pagination.Page[models.Product]
	IsProductsLoading bool `json:"isProductsLoading"`
}

// ListProducts serves the public listings. Only published products appear.
func ListProducts(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap := st.Snapshot()
		items, err := selectListing(snap.Products, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := pagination.Slice(items, pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WriteSuccess(w, productListResponse{Page: page, IsProductsLoading: snap.IsProductsLoading})
	}
}

func selectListing(products []models.Product, r *http.Request) ([]models.Product, error) {
	query := r.URL.Query()
	category := strings.TrimSpace(query.Get("category"))
	subcategory := strings.TrimSpace(query.Get("subcategory"))

	switch deals := strings.TrimSpace(query.Get("deals")); deals {
	case "":
	case dealsSuperdeals:
		return catalog.Superdeals(products), nil
	case dealsToday:
		return catalog.TodaysDeals(products), nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown deals filter").
			WithDetails(map[string]string{"deals": "must be one of: superdeals today"})
	}

	switch {
	case subcategory != "":
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory requires category")
		}
		items, ok := catalog.BySubcategory(products, category, subcategory)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return items, nil
	case category != "":
		items, ok := catalog.ByCategory(products, category)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return items, nil
	default:
		return catalog.Published(products), nil
	}
}

// GetProduct looks a product up by id, published or not.
func GetProduct(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		product, found := st.Product(chi.URLParam(r, "productId"))
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Categories())
	}
}
