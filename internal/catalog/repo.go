package catalog

import (
	"context"

	"github.com/angelmondragon/ownshop-backend/internal/repo"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists the shared seed catalog. Per-device edits never write here.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every product in display order.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB(ctx).Order("position ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, repo.MapError(err, "products")
	}
	return products, nil
}

// FindByID loads one product.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "product")
	}
	return &product, nil
}

// Seed inserts products that are not already present and reports how many were written.
func (r *Repository) Seed(ctx context.Context, products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products)
	if result.Error != nil {
		return 0, repo.MapError(result.Error, "products")
	}
	return result.RowsAffected, nil
}
