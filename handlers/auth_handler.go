package handlers

import (
	"encoding/json"
	"net/http"

	"nominaadmin/auth"
)

type AuthHandler struct {
	Auth *auth.Authenticator
}

type loginResponse struct {
	Message string `json:"message"`
	Rol     string `json:"rol"`
}

// Login handler
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload",
		})
		return
	}

	session, err := h.Auth.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		switch err {
		case auth.ErrMissingFields:
			writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		case auth.ErrInvalidCredentials:
			writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: err.Error()})
		case auth.ErrInactiveAccount:
			writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error interno del servidor"})
		}
		return
	}

	auth.SetSessionCookie(w, session.Token)
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Inicio de sesión exitoso",
		Rol:     session.Rol,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; the server keeps no session state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}

	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Sesión cerrada correctamente",
	})
}

// Me returns the identity decoded from the session cookie.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFrom(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "No autenticado"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Rol   string `json:"rol"`
	}{
		ID:    identity.ID,
		Email: identity.Email,
		Rol:   identity.RolRaw,
	})
}

// Unauthorized is the redirect target for rejected page routes.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusUnauthorized, ApiResponse{
		Success: false,
		Message: "No autorizado",
	})
}
