package repository

import (
	"context"
	"time"

	"nominaadmin/models"
)

// UserFilter narrows ListUsers. SesionLive selects users whose last login
// falls inside models.SessionWindow.
type UserFilter struct {
	RoleID     string
	Activo     *bool
	SesionLive *bool
}

// UserRepository defines the interface for user operations. Implementations
// return users with the role reference populated and (nil, nil) when a
// lookup misses.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, error)
	// UpdateUser applies the given field set (canonical keys: email,
	// password, rol, sesion, activo, verificado) and bumps updated_at.
	UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	// UpdateSession stamps the last-login timestamp without touching updated_at.
	UpdateSession(ctx context.Context, id string, at time.Time) error
	CountByRole(ctx context.Context, roleID string) (int64, error)
}
