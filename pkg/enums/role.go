package enums

import "fmt"

// Role is the advisory permission level of a roster user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

var validRoles = []Role{
	RoleCustomer,
	RoleSeller,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsElevated reports whether signing in with this role is password-gated.
func (r Role) IsElevated() bool {
	return r == RoleSeller || r == RoleAdmin
}

// ParseRole converts raw input into a Role. The legacy "user" value maps to customer.
func ParseRole(value string) (Role, error) {
	if value == "user" {
		return RoleCustomer, nil
	}
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
