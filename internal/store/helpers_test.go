package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/ownshop-backend/internal/auth"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
	"github.com/shopspring/decimal"
)

type testEnv struct {
	store  *Store
	kv     kv.Store
	mem    *kv.Memory
	events *recorder
}

type option func(*Options)

func withRoster(users ...models.User) option {
	return func(o *Options) { o.SeedRoster = users }
}

func withCatalog(src catalog.Source) option {
	return func(o *Options) { o.Catalog = src }
}

func withKV(store kv.Store) option {
	return func(o *Options) { o.KV = store }
}

func withSignInDelay(d time.Duration) option {
	return func(o *Options) { o.SignInDelay = d }
}

func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestStore builds, activates and waits for a store backed by memory KV and the seed catalog.
func newTestStore(t *testing.T, opts ...option) *testEnv {
	t.Helper()
	env := buildTestStore(t, opts...)
	env.store.Activate(context.Background())
	waitReady(t, env.store)
	return env
}

func buildTestStore(t *testing.T, opts ...option) *testEnv {
	t.Helper()
	mem := kv.NewMemory()
	o := Options{
		DeviceID:    "device-test",
		Catalog:     catalog.SeedSource{},
		KV:          mem.Scope("device-test"),
		Credentials: auth.SentinelChecker{Password: SentinelPassword},
		NewID:       sequentialIDs(),
		Now:         func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	st, err := New(o)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(st.Close)
	rec := &recorder{}
	st.Subscribe(rec.record)
	return &testEnv{store: st, kv: o.KV, mem: mem, events: rec}
}

func waitReady(t *testing.T, st *Store) {
	t.Helper()
	select {
	case <-st.Ready():
	case <-time.After(5 * time.Second):
		t.Fatalf("store never became ready")
	}
}

func (e *testEnv) signIn(t *testing.T, email string) {
	t.Helper()
	if out := e.store.SignIn(context.Background(), email, nil); !out.OK {
		t.Fatalf("sign in %s failed: %+v", email, out.Notification)
	}
}

func (e *testEnv) product(t *testing.T, id string) models.Product {
	t.Helper()
	p, ok := e.store.Product(id)
	if !ok {
		t.Fatalf("product %s not found", id)
	}
	return p
}

func (e *testEnv) kvValue(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := e.kv.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("kv get %s: %v", key, err)
	}
	return v, ok
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func (r *recorder) notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, ev := range r.events {
		if ev.Kind == EventNotification {
			out = append(out, *ev.Notification)
		}
	}
	return out
}

// gatedSource blocks Fetch until release is closed.
type gatedSource struct {
	release  chan struct{}
	products []models.Product
	err      error
}

func (g *gatedSource) Fetch(ctx context.Context) ([]models.Product, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.products, g.err
}

// flakyKV fails every write.
type flakyKV struct {
	kv.Store
}

func (f flakyKV) Set(context.Context, string, string) error { return errors.New("kv down") }
func (f flakyKV) Del(context.Context, string) error         { return errors.New("kv down") }

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func customer(email string) models.User {
	return models.User{ID: "u-" + email, Email: email, Role: enums.RoleCustomer}
}
