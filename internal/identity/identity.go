// Package identity verifies signed access tokens and carries the caller's
// identity through request contexts.
package identity

import "context"

// Role grants access to owner-scoped or cross-owner operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated caller. OwnerID is the token subject.
type Identity struct {
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
}

// IsAdmin reports whether the identity may read across owners.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess reports whether the identity may read or delete a record
// owned by ownerID.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || i.OwnerID == ownerID
}

type contextKey struct{}

type state struct {
	identity *Identity
	err      error
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, state{identity: &id})
}

func withError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, contextKey{}, state{err: err})
}

// FromContext returns the identity attached by Middleware, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	s, ok := ctx.Value(contextKey{}).(state)
	if !ok || s.identity == nil {
		return nil, false
	}
	id := *s.identity
	return &id, true
}

// Authenticated returns the caller identity or the reason there is none:
// ErrUnauthenticated wrapping the token failure when a token was rejected.
func Authenticated(ctx context.Context) (*Identity, error) {
	s, _ := ctx.Value(contextKey{}).(state)
	if s.identity != nil {
		id := *s.identity
		return &id, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, ErrUnauthenticated
}

// Admin returns the caller identity when it holds the admin role.
func Admin(ctx context.Context) (*Identity, error) {
	id, err := Authenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		return nil, ErrForbidden
	}
	return id, nil
}
