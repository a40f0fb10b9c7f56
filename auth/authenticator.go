package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"nominaadmin/repository"
)

var (
	// ErrMissingFields covers empty email or password in the login payload.
	ErrMissingFields = errors.New("email y contraseña son requeridos")
	// ErrInvalidCredentials is shared by "user not found" and "wrong
	// password" so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// ErrInactiveAccount means the credentials may be fine but the account
	// was soft-deactivated. Checked before the password comparison.
	ErrInactiveAccount = errors.New("usuario inactivo, contacta al administrador del sistema")
)

// Session is the successful outcome of Authenticate.
type Session struct {
	Token string
	Rol   string
}

// Authenticator verifies credentials against the user store and mints
// session tokens.
type Authenticator struct {
	Users repository.UserRepository
	Codec *TokenCodec
}

func NewAuthenticator(users repository.UserRepository, codec *TokenCodec) *Authenticator {
	return &Authenticator{Users: users, Codec: codec}
}

func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := a.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Activo {
		return nil, ErrInactiveAccount
	}
	if !CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if user.Rol == nil || user.Rol.Nombre == "" {
		return nil, errors.New("user role reference is unresolved")
	}

	if err := a.Users.UpdateSession(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	token, err := a.Codec.Issue(user.ID, user.Email, user.Rol.Nombre)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Rol: user.Rol.Nombre}, nil
}
