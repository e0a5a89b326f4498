package auth

import (
	"context"
	"errors"
	"net/http"
)

// ErrUnauthenticated is returned when a request carries no usable identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Role is the caller's privilege level within the studio.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Identity is a resolved caller. Services receive an Identity and apply
// their own guards; they never inspect credentials themselves.
type Identity struct {
	AccountID string
	Email     string
	Role      Role
}

// Elevated reports whether the identity may perform privileged operations:
// settlement generation, complexity edits, and edits to complete sprints.
func (i Identity) Elevated() bool {
	return i.Role == RoleOwner || i.Role == RoleAdmin
}

// Provider resolves a request to an identity. Session issuance and
// credential storage live outside this module.
type Provider interface {
	Resolve(ctx context.Context, r *http.Request) (Identity, error)
}

// StaticProvider returns a fixed identity for every request. Used by the
// CLI (which runs as the local operator) and by tests.
type StaticProvider struct {
	Identity Identity
}

func (p StaticProvider) Resolve(ctx context.Context, r *http.Request) (Identity, error) {
	if p.Identity.AccountID == "" {
		return Identity{}, ErrUnauthenticated
	}
	return p.Identity, nil
}
