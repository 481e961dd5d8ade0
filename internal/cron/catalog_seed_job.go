package cron

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type catalogSeeder interface {
	Seed(ctx context.Context, products []models.Product) (int64, error)
}

// CatalogSeedJob re-inserts any seed products missing from the shared table.
type CatalogSeedJob struct {
	logg     *logger.Logger
	repo     catalogSeeder
	products func() []models.Product
}

func NewCatalogSeedJob(logg *logger.Logger, repo catalogSeeder, products func() []models.Product) (*CatalogSeedJob, error) {
	if logg == nil {
		return nil, errors.New("logger required")
	}
	if repo == nil {
		return nil, errors.New("catalog repository required")
	}
	if products == nil {
		return nil, errors.New("seed products required")
	}
	return &CatalogSeedJob{logg: logg, repo: repo, products: products}, nil
}

func (j *CatalogSeedJob) Name() string { return "catalog_seed" }

func (j *CatalogSeedJob) Run(ctx context.Context) error {
	written, err := j.repo.Seed(ctx, j.products())
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if written > 0 {
		j.logg.Info(j.logg.WithField(ctx, "written", written), "restored missing seed products")
	}
	return nil
}
