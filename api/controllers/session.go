package controllers

import (
	"net/http"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/api/validators"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type signInRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password *string `json:"password,omitempty"`
}

// SignIn signs the device in. Unknown emails are registered as customers.
func SignIn(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		var payload signInRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := st.SignIn(r.Context(), payload.Email, payload.Password)
		writeOutcome(w, r, logg, out, http.StatusOK, nil)
	}
}

func SignOut(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		writeOutcome(w, r, logg, st.SignOut(r.Context()), http.StatusOK, nil)
	}
}
