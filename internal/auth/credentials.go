package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/security"
)

// CredentialChecker decides whether an elevated account may sign in with password.
type CredentialChecker interface {
	Check(ctx context.Context, user models.User, password string) (bool, error)
}

// SentinelChecker accepts exactly one shared password.
type SentinelChecker struct {
	Password string
}

func (c SentinelChecker) Check(ctx context.Context, _ models.User, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if c.Password == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1, nil
}

// HashChecker verifies a per-user Argon2id hash. Users without a hash are
// judged by Fallback, rejected when Fallback is nil.
type HashChecker struct {
	Fallback CredentialChecker
}

func (c HashChecker) Check(ctx context.Context, user models.User, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if security.IsEmptyHash(user.PasswordHash) {
		if c.Fallback == nil {
			return false, nil
		}
		return c.Fallback.Check(ctx, user, password)
	}
	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("verify password for %s: %w", user.Email, err)
	}
	return ok, nil
}

// NewChecker builds the checker used in production: hashed accounts verify
// against their hash and the rest accept the sentinel.
func NewChecker(cfg config.StoreConfig) CredentialChecker {
	return HashChecker{Fallback: SentinelChecker{Password: cfg.SentinelPassword}}
}
