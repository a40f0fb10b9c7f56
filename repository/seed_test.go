package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nominaadmin/models"
)

type seedUserStore struct {
	users   map[string]*models.User
	created int
}

func (s *seedUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.created++
	user.ID = fmt.Sprintf("u%d", s.created)
	s.users[user.Email] = user
	return nil
}

func (s *seedUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *seedUserStore) GetUserByID(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

func (s *seedUserStore) ListUsers(_ context.Context, _ UserFilter) ([]*models.User, error) {
	return nil, nil
}

func (s *seedUserStore) UpdateUser(_ context.Context, _ string, _ map[string]interface{}) (*models.User, error) {
	return nil, nil
}

func (s *seedUserStore) UpdateSession(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (s *seedUserStore) CountByRole(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type seedRoleStore struct {
	roles   map[string]*models.Role
	created int
}

func (s *seedRoleStore) CreateRole(_ context.Context, role *models.Role) error {
	s.created++
	role.ID = fmt.Sprintf("r%d", s.created)
	s.roles[role.Nombre] = role
	return nil
}

func (s *seedRoleStore) GetRoleByName(_ context.Context, nombre string) (*models.Role, error) {
	return s.roles[nombre], nil
}

func (s *seedRoleStore) GetRoleByID(_ context.Context, _ string) (*models.Role, error) {
	return nil, nil
}

func (s *seedRoleStore) ListRoles(_ context.Context, _ *bool) ([]*models.Role, error) {
	return nil, nil
}

func (s *seedRoleStore) RenameRole(_ context.Context, _, _ string) (*models.Role, error) {
	return nil, nil
}

func (s *seedRoleStore) DeactivateRole(_ context.Context, _ string) (*models.Role, error) {
	return nil, nil
}

func (s *seedRoleStore) DeleteRole(_ context.Context, _ string) error {
	return nil
}

type seedCatalogStore struct {
	entries map[string]*models.CatalogEntry
	created int
}

func (s *seedCatalogStore) key(tipo, nombre string) string {
	return tipo + "/" + nombre
}

func (s *seedCatalogStore) CreateEntry(_ context.Context, tipo string, entry *models.CatalogEntry) error {
	s.created++
	entry.ID = fmt.Sprintf("c%d", s.created)
	entry.Tipo = tipo
	s.entries[s.key(tipo, entry.Nombre)] = entry
	return nil
}

func (s *seedCatalogStore) GetEntryByName(_ context.Context, tipo, nombre string) (*models.CatalogEntry, error) {
	return s.entries[s.key(tipo, nombre)], nil
}

func (s *seedCatalogStore) GetEntryByID(_ context.Context, _, _ string) (*models.CatalogEntry, error) {
	return nil, nil
}

func (s *seedCatalogStore) ListEntries(_ context.Context, _ string) ([]*models.CatalogEntry, error) {
	return nil, nil
}

func (s *seedCatalogStore) UpdateEntry(_ context.Context, _, _ string, _ *string, _ *bool) (*models.CatalogEntry, error) {
	return nil, nil
}

func (s *seedCatalogStore) DeleteEntry(_ context.Context, _, _ string) error {
	return nil
}

func TestSeedBootstrapsRolesAndSuperUser(t *testing.T) {
	users := &seedUserStore{users: map[string]*models.User{}}
	roles := &seedRoleStore{roles: map[string]*models.Role{}}
	catalogs := &seedCatalogStore{entries: map[string]*models.CatalogEntry{}}

	require.NoError(t, Seed(context.Background(), users, roles, catalogs))

	for _, nombre := range []string{"Super", "Administrador", "Usuario"} {
		role, ok := roles.roles[nombre]
		require.True(t, ok, "role %s must be seeded", nombre)
		assert.True(t, role.Activo)
	}

	for tipo, nombres := range seedCatalogs {
		for _, nombre := range nombres {
			entry, err := catalogs.GetEntryByName(context.Background(), tipo, nombre)
			require.NoError(t, err)
			require.NotNil(t, entry, "catalog %s/%s must be seeded", tipo, nombre)
			assert.True(t, entry.Activo)
		}
	}

	super := users.users["admin@super.com"]
	require.NotNil(t, super)
	assert.Equal(t, roles.roles["Super"].ID, super.RoleID)
	assert.True(t, super.Activo)
	assert.True(t, super.Verificado)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(super.Password), []byte("Super1234*")))
}

func TestSeedIsIdempotent(t *testing.T) {
	users := &seedUserStore{users: map[string]*models.User{}}
	roles := &seedRoleStore{roles: map[string]*models.Role{}}
	catalogs := &seedCatalogStore{entries: map[string]*models.CatalogEntry{}}

	require.NoError(t, Seed(context.Background(), users, roles, catalogs))
	firstRun := catalogs.created
	require.NoError(t, Seed(context.Background(), users, roles, catalogs))

	assert.Equal(t, 3, roles.created, "roles must not be duplicated")
	assert.Equal(t, firstRun, catalogs.created, "catalog entries must not be duplicated")
	assert.Equal(t, 1, users.created, "super user must not be duplicated")
}
