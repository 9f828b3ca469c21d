package models

import "fmt"

// Role identifies what kind of principal is acting: a regular customer,
// a salon owner, or a stylist employed by a salon.
type Role string

const (
	RoleUser    Role = "user"
	RoleOwner   Role = "owner"
	RoleStylist Role = "stylist"
)

// ParseRole validates a raw role string, defaulting empty input to RoleUser.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleOwner, RoleStylist:
		return Role(raw), nil
	case "":
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Principal is the authenticated actor extracted from a verified token.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
