package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/api/validators"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type setBannerRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

type verificationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

func SetBanner(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload setBannerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeOutcome(w, r, logg, st.SetBanner(r.Context(), payload.Title, payload.ImageURL), http.StatusOK, nil)
	}
}

// ListVerifications returns every verification known to the device, optionally filtered by status.
func ListVerifications(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		all := st.Snapshot().Verifications
		status := r.URL.Query().Get("status")
		if status == "" {
			responses.WriteSuccess(w, all)
			return
		}
		want, err := enums.ParseVerificationStatus(status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationError("status", err))
			return
		}
		filtered := all[:0]
		for _, v := range all {
			if v.Status == want {
				filtered = append(filtered, v)
			}
		}
		responses.WriteSuccess(w, filtered)
	}
}

func UpdateVerificationStatus(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload verificationStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := st.UpdateVerificationStatus(r.Context(), chi.URLParam(r, "verificationId"), enums.VerificationStatus(payload.Status))
		writeOutcome(w, r, logg, out, http.StatusOK, nil)
	}
}
