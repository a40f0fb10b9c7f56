package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nominaadmin/auth"
	"nominaadmin/models"
)

func superRole() *models.Role {
	return &models.Role{ID: "r-super", Nombre: models.RoleNameSuper, Activo: true}
}

func adminRole() *models.Role {
	return &models.Role{ID: "r-admin", Nombre: models.RoleNameAdministrador, Activo: true}
}

func userRole() *models.Role {
	return &models.Role{ID: "r-user", Nombre: models.RoleNameUsuario, Activo: true}
}

func seededAuthHandler(t *testing.T) (*AuthHandler, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	hash, err := auth.HashPassword("Super1234*")
	require.NoError(t, err)
	users.add(&models.User{
		ID:         "u-super",
		Email:      "admin@super.com",
		Password:   hash,
		Rol:        superRole(),
		Activo:     true,
		Verificado: true,
	})
	authn := auth.NewAuthenticator(users, auth.NewTokenCodec("test-secret"))
	return &AuthHandler{Auth: authn}, users
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	handler, users := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/auth/login", `{"email":"admin@super.com","password":"Super1234*"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var body loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Inicio de sesión exitoso", body.Message)
	assert.Equal(t, "Super", body.Rol)

	cookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "token=")
	assert.Contains(t, cookie, "Max-Age=28800")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Strict")

	assert.NotNil(t, users.users["u-super"].Sesion, "login must stamp the session")
}

func TestLoginWrongPassword(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/auth/login", `{"email":"admin@super.com","password":"incorrecta"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "credenciales inválidas")
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/auth/login", `{"email":"nadie@super.com","password":"Super1234*"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "credenciales inválidas")
}

func TestLoginInactiveAccount(t *testing.T) {
	handler, users := seededAuthHandler(t)
	users.users["u-super"].Activo = false

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/auth/login", `{"email":"admin@super.com","password":"Super1234*"}`))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "usuario inactivo")
}

func TestLoginMissingFields(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/auth/login", `{"email":"admin@super.com"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRejectsGet(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sesión cerrada correctamente")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestMeReturnsIdentity(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/auth/me", nil)
	ctx := auth.WithIdentity(context.Background(), &auth.Identity{
		ID: "u-super", Email: "admin@super.com", Rol: models.RoleSuper, RolRaw: "Super",
	})
	rec := httptest.NewRecorder()
	handler.Me(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Rol   string `json:"rol"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u-super", body.ID)
	assert.Equal(t, "admin@super.com", body.Email)
	assert.Equal(t, "Super", body.Rol)
}

func TestMeWithoutIdentity(t *testing.T) {
	handler, _ := seededAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Me(rec, httptest.NewRequest(http.MethodGet, "/api/protected/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
