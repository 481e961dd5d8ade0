package catalog

import (
	"context"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
)

// Source produces the initial product list for a store.
type Source interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// SeedSource serves the built-in catalog after Delay, simulating a slow backend.
type SeedSource struct {
	Delay time.Duration
}

func (s SeedSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	return SeedProducts(), nil
}

// RepoSource reads the catalog from the products table.
type RepoSource struct {
	Repo  *Repository
	Delay time.Duration
}

func (s RepoSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
