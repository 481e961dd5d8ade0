package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

// Factory builds the store for a device that has none yet.
type Factory func(deviceID string) (*Store, error)

// RegistryParams configure a Registry.
type RegistryParams struct {
	Factory      Factory
	Logger       *logger.Logger
	IdleTTL      time.Duration
	Now          func() time.Time
	OnSizeChange func(int)
	// OnEvict runs after an idle device's store is closed.
	OnEvict func(deviceID string)
}

// Registry owns one activated Store per device id.
type Registry struct {
	factory      Factory
	logg         *logger.Logger
	idleTTL      time.Duration
	now          func() time.Time
	onSizeChange func(int)
	onEvict      func(string)

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	store *Store
	once  sync.Once
}

func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Factory == nil {
		return nil, errors.New("store factory required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Registry{
		factory:      params.Factory,
		logg:         params.Logger,
		idleTTL:      params.IdleTTL,
		now:          params.Now,
		onSizeChange: params.OnSizeChange,
		onEvict:      params.OnEvict,
		entries:      make(map[string]*registryEntry),
	}, nil
}

// Get returns the device's store, creating and activating it on first use.
func (r *Registry) Get(ctx context.Context, deviceID string) (*Store, error) {
	if deviceID == "" {
		return nil, errors.New("device id required")
	}

	r.mu.Lock()
	entry, ok := r.entries[deviceID]
	if !ok {
		st, err := r.factory(deviceID)
		if err != nil {
			r.mu.Unlock()
			return nil, fmt.Errorf("build store for device %s: %w", deviceID, err)
		}
		entry = &registryEntry{store: st}
		r.entries[deviceID] = entry
	}
	size := len(r.entries)
	r.mu.Unlock()

	entry.once.Do(func() {
		entry.store.Activate(ctx)
		r.logg.Info(r.logg.WithDeviceID(ctx, deviceID), "device store activated")
	})
	entry.store.touch()
	if !ok {
		r.reportSize(size)
	}
	return entry.store, nil
}

// Len reports how many devices currently hold a store.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// EvictIdle closes and forgets stores unused for longer than the idle TTL.
// A non-positive TTL disables eviction.
func (r *Registry) EvictIdle(ctx context.Context) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*Store
	for id, entry := range r.entries {
		if entry.store.LastUsed().Before(cutoff) {
			evicted = append(evicted, entry.store)
			delete(r.entries, id)
		}
	}
	size := len(r.entries)
	r.mu.Unlock()

	for _, st := range evicted {
		st.Close()
		if r.onEvict != nil {
			r.onEvict(st.DeviceID())
		}
		r.logg.Debug(r.logg.WithDeviceID(ctx, st.DeviceID()), "idle device store evicted")
	}
	if len(evicted) > 0 {
		r.reportSize(size)
	}
	return len(evicted)
}

// Close shuts every store down.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*registryEntry)
	r.mu.Unlock()

	for _, entry := range entries {
		entry.store.Close()
	}
	r.reportSize(0)
}

func (r *Registry) reportSize(n int) {
	if r.onSizeChange != nil {
		r.onSizeChange(n)
	}
}
