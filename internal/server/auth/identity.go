package auth

import (
	"context"

	"github.com/dmitrijs2005/acquisitions/internal/server/models"
)

// Identity is the authenticated caller as decoded from a session token.
type Identity struct {
	ID    int64
	Email string
	Role  models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Owns reports whether the caller is the account with the given id.
func (i Identity) Owns(id int64) bool {
	return i.ID == id
}

// IdentityOf builds the token payload for a stored user.
func IdentityOf(u *models.User) Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
