package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/api/validators"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type addProductRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Price         string  `json:"price" validate:"required,decimal"`
	OriginalPrice *string `json:"originalPrice,omitempty" validate:"omitempty,decimal"`
	Category      string  `json:"category" validate:"required"`
	Subcategory   *string `json:"subcategory,omitempty"`
	ImageURL      string  `json:"imageUrl" validate:"omitempty,url"`
	StoreName     string  `json:"storeName,omitempty"`
}

func (p addProductRequest) toInput(defaultStoreName string) (store.ProductInput, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return store.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	in := store.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		ImageURL:    p.ImageURL,
		StoreName:   p.StoreName,
	}
	if p.OriginalPrice != nil {
		orig, err := decimal.NewFromString(*p.OriginalPrice)
		if err != nil {
			return store.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid original price")
		}
		in.OriginalPrice = &orig
	}
	cat, ok := catalog.ResolveCategory(catalog.Slugify(p.Category))
	if !ok {
		return store.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]string{"category": p.Category})
	}
	in.Category = cat.Name
	if p.Subcategory != nil && *p.Subcategory != "" {
		_, sub, ok := catalog.ResolveSubcategory(cat.Slug, catalog.Slugify(*p.Subcategory))
		if !ok {
			return store.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown subcategory").
				WithDetails(map[string]string{"subcategory": *p.Subcategory})
		}
		name := sub.Name
		in.Subcategory = &name
	} else {
		in.Subcategory = nil
	}
	if in.StoreName == "" {
		in.StoreName = defaultStoreName
	}
	return in, nil
}

// AddProduct creates a draft product on the device's catalog.
func AddProduct(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload addProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeName := ""
		if user, ok := st.CurrentUser(); ok && user.StoreName != nil {
			storeName = *user.StoreName
		}
		input, err := payload.toInput(storeName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeOutcome(w, r, logg, st.AddProduct(r.Context(), input), http.StatusCreated, nil)
	}
}

func RemoveProduct(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		writeOutcome(w, r, logg, st.RemoveProduct(r.Context(), chi.URLParam(r, "productId")), http.StatusOK, nil)
	}
}

func ToggleProductPublication(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		writeOutcome(w, r, logg, st.ToggleProductPublication(r.Context(), chi.URLParam(r, "productId")), http.StatusOK, nil)
	}
}
