package handlers

import (
	"context"
	"fmt"
	"time"

	"nominaadmin/models"
	"nominaadmin/repository"
)

// fakeUserRepo is an in-memory UserRepository for handler tests. UpdateUser
// mirrors the real implementations: canonical field keys, updated_at bumped
// on every write.
type fakeUserRepo struct {
	users map[string]*models.User
	roles map[string]*models.Role
	seq   int
}

func newFakeUserRepo(roles ...*models.Role) *fakeUserRepo {
	repo := &fakeUserRepo{
		users: make(map[string]*models.User),
		roles: make(map[string]*models.Role),
	}
	for _, r := range roles {
		repo.roles[r.ID] = r
	}
	return repo
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.Rol != nil {
		u.RoleID = u.Rol.ID
		f.roles[u.Rol.ID] = u.Rol
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	f.seq++
	user.ID = fmt.Sprintf("u%d", f.seq)
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	user.Rol = f.roles[user.RoleID]
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context, filter repository.UserFilter) ([]*models.User, error) {
	now := time.Now().UTC()
	out := []*models.User{}
	for _, u := range f.users {
		if filter.RoleID != "" && u.RoleID != filter.RoleID {
			continue
		}
		if filter.Activo != nil && u.Activo != *filter.Activo {
			continue
		}
		if filter.SesionLive != nil && u.SessionLive(now) != *filter.SesionLive {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	for key, value := range fields {
		switch key {
		case "email":
			u.Email = value.(string)
		case "password":
			u.Password = value.(string)
		case "rol":
			u.RoleID = value.(string)
			u.Rol = f.roles[u.RoleID]
		case "sesion":
			at := value.(time.Time)
			u.Sesion = &at
		case "activo":
			u.Activo = value.(bool)
		case "verificado":
			u.Verificado = value.(bool)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	return u, nil
}

func (f *fakeUserRepo) UpdateSession(_ context.Context, id string, at time.Time) error {
	if u, ok := f.users[id]; ok {
		u.Sesion = &at
	}
	return nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, roleID string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

type fakeRoleRepo struct {
	roles map[string]*models.Role
	seq   int
}

func newFakeRoleRepo(roles ...*models.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: make(map[string]*models.Role)}
	for _, r := range roles {
		repo.roles[r.ID] = r
	}
	return repo
}

func (f *fakeRoleRepo) CreateRole(_ context.Context, role *models.Role) error {
	f.seq++
	role.ID = fmt.Sprintf("r%d", f.seq)
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) GetRoleByID(_ context.Context, id string) (*models.Role, error) {
	return f.roles[id], nil
}

func (f *fakeRoleRepo) GetRoleByName(_ context.Context, nombre string) (*models.Role, error) {
	for _, r := range f.roles {
		if r.Nombre == nombre {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRoleRepo) ListRoles(_ context.Context, activo *bool) ([]*models.Role, error) {
	out := []*models.Role{}
	for _, r := range f.roles {
		if models.RoleKindOf(r.Nombre) == models.RoleSuper {
			continue
		}
		if activo != nil && r.Activo != *activo {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoleRepo) RenameRole(_ context.Context, id, nombre string) (*models.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, nil
	}
	r.Nombre = nombre
	return r, nil
}

func (f *fakeRoleRepo) DeactivateRole(_ context.Context, id string) (*models.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, nil
	}
	r.Activo = false
	return r, nil
}

func (f *fakeRoleRepo) DeleteRole(_ context.Context, id string) error {
	if _, ok := f.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}
