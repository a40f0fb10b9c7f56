package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nominaadmin/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func gatedServer(t *testing.T, codec *TokenCodec) (http.Handler, *Identity) {
	t.Helper()
	var seen Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := IdentityFrom(r.Context()); id != nil {
			seen = *id
		}
		w.WriteHeader(http.StatusOK)
	})
	return Middleware(codec, testLogger())(inner), &seen
}

func requestWithToken(t *testing.T, codec *TokenCodec, path, rol string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if rol != "" {
		token, err := codec.Issue("u1", "ana@example.com", rol)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return req
}

func TestMiddlewarePublicPathPassesWithoutToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, _ := gatedServer(t, codec)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(t, codec, "/auth/login", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewarePrefixesAreSegmentAligned(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, _ := gatedServer(t, codec)

	// Sibling paths sharing the prefix characters stay public.
	for _, path := range []string{"/administracion", "/dashboards", "/api/protectedX"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, codec, path, ""))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestMiddlewareMissingTokenOnAPI(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, _ := gatedServer(t, codec)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(t, codec, "/api/protected/usuarios", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No autenticado")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestMiddlewareMissingTokenOnPageRedirects(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, _ := gatedServer(t, codec)

	for _, path := range []string{"/admin", "/admin/usuarios", "/dashboard"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, codec, path, ""))
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/unauthorized", rec.Header().Get("Location"), path)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, _ := gatedServer(t, codec)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/usuarios", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "no-es-un-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRoleMatrix(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	cases := []struct {
		path string
		rol  string
		want int
	}{
		{"/admin", "Super", http.StatusOK},
		{"/admin", "Administrador", http.StatusOK},
		{"/admin", "Usuario", http.StatusFound},
		{"/admin/roles", "Usuario", http.StatusFound},
		{"/dashboard", "Usuario", http.StatusOK},
		{"/dashboard", "Administrador", http.StatusOK},
		{"/api/protected/auth/me", "Usuario", http.StatusOK},
		{"/api/protected/usuarios", "Super", http.StatusOK},
	}
	for _, tc := range cases {
		handler, _ := gatedServer(t, codec)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, codec, tc.path, tc.rol))
		assert.Equal(t, tc.want, rec.Code, "%s as %s", tc.path, tc.rol)
	}
}

func TestMiddlewareUnknownRoleDenied(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, _ := gatedServer(t, codec)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(t, codec, "/admin", "Invitado"))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestMiddlewareInjectsIdentity(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	handler, seen := gatedServer(t, codec)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithToken(t, codec, "/api/protected/auth/me", "Administrador"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", seen.ID)
	assert.Equal(t, "ana@example.com", seen.Email)
	assert.Equal(t, models.RoleAdministrador, seen.Rol)
	assert.Equal(t, "Administrador", seen.RolRaw)
}
