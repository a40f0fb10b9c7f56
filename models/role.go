package models

type Role struct {
	ID     string `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
	Activo bool   `json:"activo" db:"activo"`
}

// RoleKind is the closed set of role names the authorization rules care
// about. Stored role references are resolved to a kind once, at the
// data-access boundary, instead of comparing raw strings in every handler.
type RoleKind int

const (
	RoleUnknown RoleKind = iota
	RoleSuper
	RoleAdministrador
	RoleUsuario
)

const (
	RoleNameSuper         = "Super"
	RoleNameAdministrador = "Administrador"
	RoleNameUsuario       = "Usuario"
)

func RoleKindOf(nombre string) RoleKind {
	switch nombre {
	case RoleNameSuper:
		return RoleSuper
	case RoleNameAdministrador:
		return RoleAdministrador
	case RoleNameUsuario:
		return RoleUsuario
	default:
		// Custom roles act as ordinary authenticated users.
		return RoleUnknown
	}
}

func (k RoleKind) String() string {
	switch k {
	case RoleSuper:
		return RoleNameSuper
	case RoleAdministrador:
		return RoleNameAdministrador
	case RoleUsuario:
		return RoleNameUsuario
	default:
		return ""
	}
}

// Admin reports whether the kind may manage users and other admin resources.
func (k RoleKind) Admin() bool {
	return k == RoleSuper || k == RoleAdministrador
}
