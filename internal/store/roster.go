package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
)

const sellerStoreName = "The Seller's Store"

// DefaultRoster is the roster a device starts with when nothing is persisted.
func DefaultRoster() []models.User {
	storeName := sellerStoreName
	return []models.User{
		{ID: "1", Email: "user@example.com", Role: enums.RoleCustomer},
		{ID: "2", Email: "seller@example.com", Role: enums.RoleSeller, StoreName: &storeName},
		{ID: "3", Email: "admin@example.com", Role: enums.RoleAdmin},
	}
}

// WithPasswordHash returns a copy of roster where the user with email carries hash.
func WithPasswordHash(roster []models.User, email, hash string) []models.User {
	out := cloneUsers(roster)
	for i := range out {
		if out[i].Email == email {
			out[i].PasswordHash = hash
		}
	}
	return out
}

// DefaultStoreName derives "<local-part>'s Store" from an email address.
func DefaultStoreName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local + "'s Store"
}

type rosterRecord struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	StoreName    *string `json:"storeName,omitempty"`
	PasswordHash string  `json:"passwordHash,omitempty"`
}

func encodeRoster(users []models.User) (string, error) {
	records := make([]rosterRecord, 0, len(users))
	for _, u := range users {
		records = append(records, rosterRecord{
			ID:           u.ID,
			Email:        u.Email,
			Role:         u.Role.String(),
			StoreName:    u.StoreName,
			PasswordHash: u.PasswordHash,
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode roster: %w", err)
	}
	return string(raw), nil
}

// decodeRoster parses a persisted roster. Records with an unknown role are
// skipped and reported in dropped.
func decodeRoster(raw string) (users []models.User, dropped int, err error) {
	var records []rosterRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, 0, fmt.Errorf("decode roster: %w", err)
	}
	users = make([]models.User, 0, len(records))
	for _, rec := range records {
		role, err := enums.ParseRole(rec.Role)
		if err != nil || rec.Email == "" {
			dropped++
			continue
		}
		users = append(users, models.User{
			ID:           rec.ID,
			Email:        rec.Email,
			Role:         role,
			StoreName:    rec.StoreName,
			PasswordHash: rec.PasswordHash,
		})
	}
	return users, dropped, nil
}

func cloneUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}

func findUser(users []models.User, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
