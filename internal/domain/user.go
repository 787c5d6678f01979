package domain

import (
	"context"
	"slices"
	"strings"
)

// Roles carried by an authenticated principal.
const (
	RoleOrganizer = "ORGANIZER"
	RoleClient    = "CLIENT"
)

// UserProfile is what the user service knows about a principal.
type UserProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// UserDirectory resolves a user ID to a profile. Returns ErrNotFound when the
// user does not exist and ErrCollaboratorUnavailable on transport failures.
type UserDirectory interface {
	GetUser(ctx context.Context, userID string) (*UserProfile, error)
}

// Principal is the authenticated caller as established by the API layer.
type Principal struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the principal carries role (case-insensitive).
func (p Principal) HasRole(role string) bool {
	return slices.ContainsFunc(p.Roles, func(r string) bool {
		return strings.EqualFold(strings.TrimSpace(r), role)
	})
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}
