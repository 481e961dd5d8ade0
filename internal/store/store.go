// Package store holds the storefront state of one device: session, roster,
// catalog, cart, banner and business verifications. Every operation runs to
// completion under the store lock; subscribers hear about it afterwards.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/ownshop-backend/internal/auth"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	defaultBannerTitle = "Seasonal hot picks"
	defaultBannerImage = "https://images.unsplash.com/photo-1667409702771-14213044ccc7?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&q=80&w=1080"
)

// DefaultBanner is the hero shown before any admin edit.
func DefaultBanner() models.Banner {
	return models.Banner{Title: defaultBannerTitle, ImageURL: defaultBannerImage}
}

// Options wires a Store's collaborators. Catalog, KV and Credentials are required.
type Options struct {
	DeviceID    string
	Catalog     catalog.Source
	KV          kv.Store
	Credentials auth.CredentialChecker
	Logger      *logger.Logger

	NewID       func() string
	Now         func() time.Time
	SignInDelay time.Duration
	Banner      *models.Banner
	SeedRoster  []models.User
}

// Store is the application state of one device.
type Store struct {
	deviceID    string
	catalog     catalog.Source
	kv          kv.Store
	credentials auth.CredentialChecker
	logg        *logger.Logger
	newID       func() string
	now         func() time.Time
	signInDelay time.Duration
	seedRoster  []models.User

	mu                sync.Mutex
	activated         bool
	closed            bool
	signInsInFlight   int
	sessionEmail      string
	roster            []models.User
	products          []models.Product
	isProductsLoading bool
	cart              []models.CartItem
	banner            models.Banner
	verifications     []models.BusinessVerification

	subMu     sync.RWMutex
	nextSubID int
	subs      []subscription

	lifeCtx    context.Context
	cancelLife context.CancelFunc
	ready      chan struct{}
	lastUsed   time.Time
}

type subscription struct {
	id int
	fn Listener
}

// New constructs an inactive store. Call Activate before serving operations.
func New(opts Options) (*Store, error) {
	if opts.Catalog == nil {
		return nil, errors.New("catalog source is required")
	}
	if opts.KV == nil {
		return nil, errors.New("kv store is required")
	}
	if opts.Credentials == nil {
		return nil, errors.New("credential checker is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SignInDelay < 0 {
		opts.SignInDelay = 0
	}
	banner := DefaultBanner()
	if opts.Banner != nil {
		banner = *opts.Banner
	}
	seed := opts.SeedRoster
	if seed == nil {
		seed = DefaultRoster()
	}

	lifeCtx, cancel := context.WithCancel(context.Background())
	return &Store{
		deviceID:    opts.DeviceID,
		catalog:     opts.Catalog,
		kv:          opts.KV,
		credentials: opts.Credentials,
		logg:        opts.Logger,
		newID:       opts.NewID,
		now:         opts.Now,
		signInDelay: opts.SignInDelay,
		seedRoster:  cloneUsers(seed),
		banner:      banner,
		lifeCtx:     lifeCtx,
		cancelLife:  cancel,
		ready:       make(chan struct{}),
		lastUsed:    opts.Now(),
	}, nil
}

// DeviceID identifies the device this store belongs to.
func (s *Store) DeviceID() string {
	return s.deviceID
}

// Subscribe registers fn for every future event and returns its unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	s.subMu.RLock()
	subs := append([]subscription(nil), s.subs...)
	s.subMu.RUnlock()
	for _, ev := range events {
		ev.DeviceID = s.deviceID
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}

// LastUsed reports when an operation last touched this store.
func (s *Store) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Store) touch() {
	s.mu.Lock()
	s.lastUsed = s.now()
	s.mu.Unlock()
}

// txn collects the effects of one operation while the lock is held.
type txn struct {
	op       string
	changed  bool
	outcome  Outcome
	extra    []Event
	navigate enums.Route
}

func (t *txn) succeed(n *Notification) {
	t.outcome.OK = true
	t.outcome.Notification = n
}

func (t *txn) fail(n *Notification) {
	t.outcome.OK = false
	t.outcome.Notification = n
}

func (t *txn) redirect(route enums.Route) {
	t.navigate = route
	t.outcome.Redirect = route
}

func (t *txn) events() []Event {
	var out []Event
	if t.changed {
		out = append(out, Event{Kind: EventStateChanged, Operation: t.op})
	}
	out = append(out, t.extra...)
	if t.outcome.Notification != nil {
		n := *t.outcome.Notification
		out = append(out, Event{Kind: EventNotification, Operation: t.op, Notification: &n})
	}
	if t.navigate != "" {
		out = append(out, Event{Kind: EventNavigation, Operation: t.op, Route: t.navigate})
	}
	return append(out, Event{Kind: EventOperation, Operation: t.op, OK: t.outcome.OK})
}

// run executes fn under the lock and publishes its events once the lock is released.
func (s *Store) run(ctx context.Context, op string, fn func(t *txn)) Outcome {
	t := &txn{op: op}
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastUsed = s.now()
		fn(t)
	}()

	if n := t.outcome.Notification; n != nil {
		s.logg.Info(s.logContext(ctx, op), "notification: "+n.Title)
	}
	s.publish(t.events())
	return t.outcome
}

func (s *Store) logContext(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = s.logg.WithDeviceID(ctx, s.deviceID)
	return s.logg.WithField(ctx, "operation", op)
}

// persist writes a KV key; failures are logged and otherwise ignored.
func (s *Store) persist(ctx context.Context, op, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logg.Warn(s.logg.WithField(s.logContext(ctx, op), "error", err.Error()), "kv write failed for "+key)
	}
}

func (s *Store) forget(ctx context.Context, op, key string) {
	if err := s.kv.Del(ctx, key); err != nil {
		s.logg.Warn(s.logg.WithField(s.logContext(ctx, op), "error", err.Error()), "kv delete failed for "+key)
	}
}

func (s *Store) persistRoster(ctx context.Context, op string) {
	raw, err := encodeRoster(s.roster)
	if err != nil {
		s.logg.Error(s.logContext(ctx, op), "roster encode failed", err)
		return
	}
	s.persist(ctx, op, kv.KeyRoster, raw)
}

func (s *Store) currentUserLocked() *models.User {
	if s.sessionEmail == "" {
		return nil
	}
	idx := findUser(s.roster, s.sessionEmail)
	if idx < 0 {
		return nil
	}
	return &s.roster[idx]
}
