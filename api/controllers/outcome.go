package controllers

import (
	"net/http"

	"github.com/angelmondragon/ownshop-backend/api/middleware"
	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

// operationResponse is what every mutating endpoint returns on success.
type operationResponse struct {
	store.Outcome
	Cart *store.CartSummary `json:"cart,omitempty"`
}

func deviceStore(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*store.Store, bool) {
	st := middleware.StoreFromContext(r.Context())
	if st == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "device store missing"))
		return nil, false
	}
	return st, true
}

// outcomeError turns a failed store outcome into a coded error whose details
// carry the notification and redirect the UI should act on.
func outcomeError(out store.Outcome) error {
	code := pkgerrors.CodeRejected
	if out.NotFound {
		code = pkgerrors.CodeNotFound
	}
	message := "operation rejected"
	if out.NotFound {
		message = "resource not found"
	}
	details := map[string]any{}
	if out.Notification != nil {
		message = out.Notification.Title
		details["notification"] = out.Notification
	}
	if out.Redirect != "" {
		details["redirect"] = out.Redirect
	}
	err := pkgerrors.New(code, message)
	if len(details) > 0 {
		err = err.WithDetails(details)
	}
	return err
}

func writeOutcome(w http.ResponseWriter, r *http.Request, logg *logger.Logger, out store.Outcome, status int, cart *store.CartSummary) {
	if !out.OK {
		responses.WriteError(r.Context(), logg, w, outcomeError(out))
		return
	}
	responses.WriteSuccessStatus(w, status, operationResponse{Outcome: out, Cart: cart})
}
