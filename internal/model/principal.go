package model

import "github.com/google/uuid"

const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// Principal is the authenticated caller of the dashboard API.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
