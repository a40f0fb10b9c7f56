package models

import "time"

// SessionWindow is how recent a user's last login must be for the session
// to count as live in listings and counts.
const SessionWindow = 5 * time.Minute

type User struct {
	ID         string     `json:"id" db:"id"`
	Email      string     `json:"email" db:"email"`
	Password   string     `json:"-" db:"password"`
	RoleID     string     `json:"-" db:"rol_id"`
	Rol        *Role      `json:"rol,omitempty"`
	Sesion     *time.Time `json:"sesion" db:"sesion"`
	Activo     bool       `json:"activo" db:"activo"`
	Verificado bool       `json:"verificado" db:"verificado"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// RoleKind resolves the populated role reference to the closed enumeration.
func (u *User) RoleKind() RoleKind {
	if u.Rol == nil {
		return RoleUnknown
	}
	return RoleKindOf(u.Rol.Nombre)
}

// SessionLive reports whether the last login falls inside SessionWindow.
func (u *User) SessionLive(now time.Time) bool {
	return u.Sesion != nil && now.Sub(*u.Sesion) <= SessionWindow
}
