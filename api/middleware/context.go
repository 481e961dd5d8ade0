package middleware

import (
	"context"

	"github.com/angelmondragon/ownshop-backend/internal/store"
)

type contextKey string

const (
	ctxDeviceID contextKey = "device_id"
	ctxStore    contextKey = "device_store"
)

func DeviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxDeviceID).(string); ok {
		return v
	}
	return ""
}

// StoreFromContext returns the device store resolved by the Device middleware.
func StoreFromContext(ctx context.Context) *store.Store {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxStore).(*store.Store); ok {
		return v
	}
	return nil
}

// WithDevice injects the device id and its store into the context.
func WithDevice(ctx context.Context, deviceID string, st *store.Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxDeviceID, deviceID)
	return context.WithValue(ctx, ctxStore, st)
}
