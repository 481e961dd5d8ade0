// Package kv provides the small string key-value persistence each device's
// storefront state is mirrored into.
package kv

import (
	"context"
)

// Well-known keys.
const (
	KeySession = "session"
	KeyRoster  = "roster"
)

// Store is one device's key-value namespace. Get reports ok=false for an
// absent key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Provider hands out a Store scoped to a device id.
type Provider interface {
	Scope(deviceID string) Store
}
