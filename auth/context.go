package auth

import (
	"context"

	"nominaadmin/models"
)

// Identity is the verified caller extracted from the session token.
type Identity struct {
	ID     string
	Email  string
	Rol    models.RoleKind
	RolRaw string
}

type contextKey string

const ctxKeyIdentity contextKey = "auth_identity"

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFrom returns the caller identity, or nil on an ungated route.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKeyIdentity).(*Identity)
	return id
}
