package store

import (
	"context"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
)

// Activate restores the roster and remembered session synchronously, then
// starts the catalog load in the background. Later calls are no-ops.
func (s *Store) Activate(ctx context.Context) {
	s.mu.Lock()
	if s.activated || s.closed {
		s.mu.Unlock()
		return
	}
	s.roster = s.loadRoster(ctx)
	if email, ok, err := s.kv.Get(ctx, kv.KeySession); err != nil {
		s.logg.Warn(s.logg.WithField(s.logContext(ctx, OpActivate), "error", err.Error()), "session restore failed")
	} else if ok && findUser(s.roster, email) >= 0 {
		s.sessionEmail = email
	}
	s.activated = true
	s.isProductsLoading = true
	s.products = nil
	s.mu.Unlock()

	s.publish([]Event{
		{Kind: EventStateChanged, Operation: OpActivate},
		{Kind: EventOperation, Operation: OpActivate, OK: true},
	})

	go s.loadCatalog()
}

func (s *Store) loadRoster(ctx context.Context) []models.User {
	raw, ok, err := s.kv.Get(ctx, kv.KeyRoster)
	if err != nil {
		s.logg.Warn(s.logg.WithField(s.logContext(ctx, OpActivate), "error", err.Error()), "roster read failed, using seed roster")
		return cloneUsers(s.seedRoster)
	}
	if ok {
		users, dropped, err := decodeRoster(raw)
		if err == nil {
			if dropped > 0 {
				s.logg.Warn(s.logg.WithField(s.logContext(ctx, OpActivate), "dropped", dropped), "roster records with unknown roles skipped")
			}
			return users
		}
		s.logg.Warn(s.logg.WithField(s.logContext(ctx, OpActivate), "error", err.Error()), "stored roster unreadable, reseeding")
	}

	s.roster = cloneUsers(s.seedRoster)
	s.persistRoster(ctx, OpActivate)
	return s.roster
}

func (s *Store) loadCatalog() {
	defer close(s.ready)

	started := time.Now()
	products, err := s.catalog.Fetch(s.lifeCtx)
	elapsed := time.Since(started)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	ctx := s.logContext(context.Background(), OpCatalogLoad)
	if err != nil {
		s.logg.Error(ctx, "catalog load failed", err)
		products = nil
	}
	loaded := make([]models.Product, 0, len(products))
	for _, p := range products {
		if verr := p.ValidatePricing(); verr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", p.ID), "catalog product skipped: "+verr.Error())
			continue
		}
		loaded = append(loaded, p.Clone())
	}
	s.products = loaded
	s.isProductsLoading = false
	s.mu.Unlock()

	s.publish([]Event{
		{Kind: EventStateChanged, Operation: OpCatalogLoad},
		{Kind: EventCatalogLoaded, Operation: OpCatalogLoad, OK: err == nil, Duration: elapsed},
		{Kind: EventOperation, Operation: OpCatalogLoad, OK: err == nil},
	})
}

// Ready is closed once the catalog load has finished or been abandoned.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Close abandons any pending catalog load. The store keeps answering
// snapshots but a late catalog result is dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	started := s.activated
	s.mu.Unlock()

	s.cancelLife()
	if !started {
		close(s.ready)
	}
}
