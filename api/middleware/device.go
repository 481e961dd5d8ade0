package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/ownshop-backend/api/responses"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	pkgAuth "github.com/angelmondragon/ownshop-backend/pkg/auth"
	"github.com/angelmondragon/ownshop-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

// DeviceTokenHeader carries the signed device token in both directions.
const DeviceTokenHeader = "X-Device-Token"

// StoreResolver hands out the store owned by a device.
type StoreResolver interface {
	Get(ctx context.Context, deviceID string) (*store.Store, error)
}

// Device identifies the calling browser from its device token, minting a
// fresh one when the header is missing or no longer valid, and attaches the
// device's store to the request context.
func Device(cfg config.JWTConfig, stores StoreResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			raw := strings.TrimSpace(r.Header.Get(DeviceTokenHeader))

			var deviceID string
			if raw != "" {
				claims, err := pkgAuth.ParseDeviceToken(cfg, raw)
				if err == nil {
					deviceID = claims.DeviceID
				} else if logg != nil {
					logg.Debug(logg.WithField(ctx, "error", err.Error()), "device token rejected; issuing a new one")
				}
			}
			if deviceID == "" {
				deviceID = pkgAuth.NewDeviceID()
				token, err := pkgAuth.MintDeviceToken(cfg, time.Now(), deviceID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue device token"))
					return
				}
				w.Header().Set(DeviceTokenHeader, token)
			}

			st, err := stores.Get(ctx, deviceID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve device store"))
				return
			}

			ctx = WithDevice(ctx, deviceID, st)
			if logg != nil {
				ctx = logg.WithDeviceID(ctx, deviceID)
				if user, ok := st.CurrentUser(); ok {
					ctx = logg.WithUserEmail(ctx, user.Email)
					ctx = logg.WithActorRole(ctx, user.Role.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
