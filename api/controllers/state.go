package controllers

import (
	"net/http"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

// GetState returns the device's full snapshot.
func GetState(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := deviceStore(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, st.Snapshot())
	}
}
