package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nominaadmin/auth"
	"nominaadmin/models"
	"nominaadmin/repository"
)

type UserHandler struct {
	Users repository.UserRepository
	Roles repository.RoleRepository
}

// List returns users filtered by rol/activo/sesion. Users holding the
// protected Super role never appear in listings.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.UserFilter{}
	q := r.URL.Query()

	if rol := q.Get("rol"); rol != "" {
		record, err := h.Roles.GetRoleByName(r.Context(), rol)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener usuarios"})
			return
		}
		if record == nil {
			writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Rol no válido"})
			return
		}
		filter.RoleID = record.ID
	}
	if activo := q.Get("activo"); activo != "" {
		v := activo == "true"
		filter.Activo = &v
	}
	if sesion := q.Get("sesion"); sesion != "" {
		v := sesion == "true"
		filter.SesionLive = &v
	}

	users, err := h.Users.ListUsers(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener usuarios"})
		return
	}

	writeJSON(w, http.StatusOK, excludeSuper(users))
}

func excludeSuper(users []*models.User) []*models.User {
	out := []*models.User{}
	for _, u := range users {
		if u.RoleKind() != models.RoleSuper {
			out = append(out, u)
		}
	}
	return out
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Rol = strings.TrimSpace(req.Rol)
	if req.Email == "" || req.Password == "" || req.Rol == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Email, contraseña y rol son requeridos"})
		return
	}

	existing, err := h.Users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al registrar usuario"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Usuario ya existe"})
		return
	}

	role, err := h.Roles.GetRoleByName(r.Context(), req.Rol)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al registrar usuario"})
		return
	}
	if role == nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Rol no válido"})
		return
	}
	if models.RoleKindOf(role.Nombre) == models.RoleSuper && !actorIsSuper(r) {
		writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "No autorizado para asignar el rol Super"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al registrar usuario"})
		return
	}

	user := &models.User{
		Email:      req.Email,
		Password:   hashed,
		RoleID:     role.ID,
		Activo:     true,
		Verificado: false,
	}
	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al registrar usuario"})
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Usuario registrado exitosamente",
		Data:    user,
	})
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.Users.GetUserByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener el usuario"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Usuario no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// updateUserRequest is the allow-list for partial user updates. Fields not
// declared here are dropped by the decoder, never applied.
type updateUserRequest struct {
	Email      *string    `json:"email"`
	Password   *string    `json:"password"`
	Rol        *string    `json:"rol"`
	Sesion     *time.Time `json:"sesion"`
	Activo     *bool      `json:"activo"`
	Verificado *bool      `json:"verificado"`
}

// Update applies an allow-list partial update with per-field authorization:
// password may be changed by the user themselves or an admin role; rol,
// sesion, activo and verificado only by Super/Administrador; assigning the
// Super role additionally requires the Super actor and is rejected outright
// otherwise.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	actor := auth.IdentityFrom(r.Context())
	if actor == nil {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "No autenticado"})
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}

	existing, err := h.Users.GetUserByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar usuario"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Usuario no encontrado"})
		return
	}

	fields := map[string]interface{}{}

	if req.Password != nil {
		if actor.ID != existing.ID && !actor.Rol.Admin() {
			writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "No autorizado para cambiar la contraseña"})
			return
		}
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar usuario"})
			return
		}
		fields["password"] = hashed
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != existing.Email {
			taken, err := h.Users.GetUserByEmail(r.Context(), email)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar usuario"})
				return
			}
			if taken != nil {
				writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El email proporcionado ya está en uso"})
				return
			}
			fields["email"] = email
		}
	}

	if req.Rol != nil {
		if !actor.Rol.Admin() {
			writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "No autorizado para cambiar el rol"})
			return
		}
		role, err := h.Roles.GetRoleByName(r.Context(), strings.TrimSpace(*req.Rol))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar usuario"})
			return
		}
		if role == nil {
			writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El rol proporcionado no existe"})
			return
		}
		if models.RoleKindOf(role.Nombre) == models.RoleSuper && actor.Rol != models.RoleSuper {
			writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "No autorizado para asignar el rol Super"})
			return
		}
		if role.ID != existing.RoleID {
			fields["rol"] = role.ID
		}
	}

	if req.Sesion != nil || req.Activo != nil || req.Verificado != nil {
		if !actor.Rol.Admin() {
			writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "No autorizado para actualizar campos administrativos"})
			return
		}
	}
	if req.Sesion != nil {
		fields["sesion"] = *req.Sesion
	}
	if req.Activo != nil && *req.Activo != existing.Activo {
		fields["activo"] = *req.Activo
	}
	if req.Verificado != nil && *req.Verificado != existing.Verificado {
		fields["verificado"] = *req.Verificado
	}

	// Distinct no-op outcome: nothing to write, updated_at stays put.
	if len(fields) == 0 {
		writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "No se realizaron cambios"})
		return
	}

	updated, err := h.Users.UpdateUser(r.Context(), id, fields)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar usuario"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Usuario no encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Usuario actualizado exitosamente",
		Data:    updated,
	})
}

// Delete soft-deactivates; users are never hard-deleted while referenced.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	actor := auth.IdentityFrom(r.Context())
	if actor == nil || !actor.Rol.Admin() {
		writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "No autorizado"})
		return
	}

	updated, err := h.Users.UpdateUser(r.Context(), id, map[string]interface{}{"activo": false})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al inactivar usuario"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Usuario no encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Usuario inactivado exitosamente",
		Data:    updated,
	})
}

// Count reports totals over non-Super users, including how many have a
// session live inside models.SessionWindow.
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context(), repository.UserFilter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al contar usuarios"})
		return
	}

	now := time.Now().UTC()
	var total, activos, inactivos, sesion int
	for _, u := range excludeSuper(users) {
		total++
		if u.Activo {
			activos++
		} else {
			inactivos++
		}
		if u.SessionLive(now) {
			sesion++
		}
	}

	writeJSON(w, http.StatusOK, struct {
		Total     int `json:"total"`
		Activos   int `json:"activos"`
		Inactivos int `json:"inactivos"`
		Sesion    int `json:"sesion"`
	}{total, activos, inactivos, sesion})
}

// ActiveSessions lists non-Super users whose last login is live.
func (h *UserHandler) ActiveSessions(w http.ResponseWriter, r *http.Request) {
	live := true
	users, err := h.Users.ListUsers(r.Context(), repository.UserFilter{SesionLive: &live})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener usuarios activos"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		UsuariosActivos []*models.User `json:"usuariosActivos"`
	}{excludeSuper(users)})
}

func actorIsSuper(r *http.Request) bool {
	actor := auth.IdentityFrom(r.Context())
	return actor != nil && actor.Rol == models.RoleSuper
}
