package models

import "github.com/angelmondragon/ownshop-backend/pkg/enums"

// User is a roster identity. Email is the unique lookup key.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Role         enums.Role `json:"role"`
	StoreName    *string    `json:"storeName,omitempty"`
	PasswordHash string     `json:"passwordHash,omitempty"`
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	out := u
	if u.StoreName != nil {
		name := *u.StoreName
		out.StoreName = &name
	}
	return out
}
