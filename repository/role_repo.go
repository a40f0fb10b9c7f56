package repository

import (
	"context"

	"nominaadmin/models"
)

// RoleRepository defines the interface for role operations. ListRoles never
// returns the protected Super role.
type RoleRepository interface {
	CreateRole(ctx context.Context, role *models.Role) error
	GetRoleByID(ctx context.Context, id string) (*models.Role, error)
	GetRoleByName(ctx context.Context, nombre string) (*models.Role, error)
	ListRoles(ctx context.Context, activo *bool) ([]*models.Role, error)
	RenameRole(ctx context.Context, id, nombre string) (*models.Role, error)
	DeactivateRole(ctx context.Context, id string) (*models.Role, error)
	DeleteRole(ctx context.Context, id string) error
}
