package repo

import (
	"context"
	"errors"

	"github.com/angelmondragon/ownshop-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/ownshop-backend/pkg/errors"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithTx returns a Base bound to the provided transaction.
func (b Base) WithTx(tx *gorm.DB) Base {
	return Base{db: tx}
}

// MapError converts persistence errors into coded errors. A missing record
// becomes NOT_FOUND naming the entity and a duplicate key becomes CONFLICT.
// Anything else is a dependency failure.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", entity)
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database operation failed")
}
