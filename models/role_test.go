package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleKindOf(t *testing.T) {
	assert.Equal(t, RoleSuper, RoleKindOf("Super"))
	assert.Equal(t, RoleAdministrador, RoleKindOf("Administrador"))
	assert.Equal(t, RoleUsuario, RoleKindOf("Usuario"))
	assert.Equal(t, RoleUnknown, RoleKindOf("super"))
	assert.Equal(t, RoleUnknown, RoleKindOf("Contador"))
}

func TestRoleKindAdmin(t *testing.T) {
	assert.True(t, RoleSuper.Admin())
	assert.True(t, RoleAdministrador.Admin())
	assert.False(t, RoleUsuario.Admin())
	assert.False(t, RoleUnknown.Admin())
}

func TestSessionLive(t *testing.T) {
	now := time.Now().UTC()

	var u User
	assert.False(t, u.SessionLive(now), "no login recorded")

	inside := now.Add(-SessionWindow + time.Second)
	u.Sesion = &inside
	assert.True(t, u.SessionLive(now))

	outside := now.Add(-SessionWindow - time.Second)
	u.Sesion = &outside
	assert.False(t, u.SessionLive(now))
}
