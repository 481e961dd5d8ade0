package verifications

import (
	"context"
	"time"

	"github.com/angelmondragon/ownshop-backend/internal/repo"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository archives business verifications and their decisions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Record(ctx context.Context, v models.BusinessVerification) error
	Decide(ctx context.Context, id string, status enums.VerificationStatus, decidedAt time.Time) (bool, error)
	FindByID(ctx context.Context, id string) (*models.BusinessVerification, error)
	ListByEmail(ctx context.Context, email string) ([]models.BusinessVerification, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns an archive repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: r.Base.WithTx(tx)}
}

// Record upserts the verification row as submitted.
func (r *repositoryImpl) Record(ctx context.Context, v models.BusinessVerification) error {
	err := r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "decided_at"}),
	}).Create(&v).Error
	return repo.MapError(err, "business verification")
}

// Decide stamps a decision onto an archived row and reports whether one existed.
func (r *repositoryImpl) Decide(ctx context.Context, id string, status enums.VerificationStatus, decidedAt time.Time) (bool, error) {
	result := r.DB(ctx).
		Model(&models.BusinessVerification{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "decided_at": decidedAt.UTC()})
	if result.Error != nil {
		return false, repo.MapError(result.Error, "business verification")
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (*models.BusinessVerification, error) {
	var v models.BusinessVerification
	if err := r.DB(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, repo.MapError(err, "business verification")
	}
	return &v, nil
}

func (r *repositoryImpl) ListByEmail(ctx context.Context, email string) ([]models.BusinessVerification, error) {
	var out []models.BusinessVerification
	err := r.DB(ctx).
		Where("email = ?", email).
		Order("submitted_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, repo.MapError(err, "business verifications")
	}
	return out, nil
}
