package controllers

import (
	"net/http"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/api/validators"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type submitVerificationRequest struct {
	BusinessType string   `json:"businessType" validate:"required,oneof=dropshipper wholesaler influencer"`
	Options      []string `json:"options"`
	CompanyName  string   `json:"companyName" validate:"required,max=200"`
	Country      string   `json:"country" validate:"omitempty,len=2"`
}

type businessOptionsResponse struct {
	BusinessType enums.BusinessType `json:"businessType"`
	Options      []string           `json:"options"`
}

// SubmitVerification files a seller application for the signed-in user.
func SubmitVerification(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload submitVerificationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bt, err := enums.ParseBusinessType(payload.BusinessType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationError("businessType", err))
			return
		}
		out := st.SubmitOwnVerification(r.Context(), store.VerificationForm{
			BusinessType: bt,
			Options:      payload.Options,
			CompanyName:  payload.CompanyName,
			Country:      payload.Country,
		})
		writeOutcome(w, r, logg, out, http.StatusCreated, nil)
	}
}

// ListBusinessOptions describes the application form's choices.
func ListBusinessOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types := []enums.BusinessType{enums.BusinessTypeDropshipper, enums.BusinessTypeWholesaler, enums.BusinessTypeInfluencer}
		out := make([]businessOptionsResponse, 0, len(types))
		for _, bt := range types {
			out = append(out, businessOptionsResponse{BusinessType: bt, Options: store.BusinessOptions(bt)})
		}
		responses.WriteSuccess(w, out)
	}
}

func validationError(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").
		WithDetails(map[string]string{field: err.Error()})
}
