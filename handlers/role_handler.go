package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"nominaadmin/models"
	"nominaadmin/repository"
)

type RoleHandler struct {
	Roles repository.RoleRepository
	Users repository.UserRepository
}

// List returns roles, optionally filtered by activo. The protected Super
// role is excluded at the repository level.
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	var activo *bool
	if v := r.URL.Query().Get("activo"); v != "" {
		b := v == "true"
		activo = &b
	}

	roles, err := h.Roles.ListRoles(r.Context(), activo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener roles"})
		return
	}
	if roles == nil {
		roles = []*models.Role{}
	}
	writeJSON(w, http.StatusOK, roles)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nombre string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El campo nombre es obligatorio"})
		return
	}

	existing, err := h.Roles.GetRoleByName(r.Context(), req.Nombre)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear rol"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El rol ya existe"})
		return
	}

	role := &models.Role{Nombre: req.Nombre, Activo: true}
	if err := h.Roles.CreateRole(r.Context(), role); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear rol"})
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Rol creado exitosamente",
		Data:    role,
	})
}

func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	role, err := h.Roles.GetRoleByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener el rol"})
		return
	}
	if role == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Rol no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Nombre string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El campo nombre es obligatorio"})
		return
	}

	existing, err := h.Roles.GetRoleByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar rol"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Rol no encontrado"})
		return
	}
	if models.RoleKindOf(existing.Nombre) == models.RoleSuper {
		writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "El rol Super no puede modificarse"})
		return
	}

	updated, err := h.Roles.RenameRole(r.Context(), id, req.Nombre)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar rol"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Rol no encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Rol actualizado exitosamente",
		Data:    updated,
	})
}

// Delete removes the role when no user references it; otherwise it only
// deactivates, preserving referential integrity.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	role, err := h.Roles.GetRoleByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar rol"})
		return
	}
	if role == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Rol no encontrado"})
		return
	}
	if models.RoleKindOf(role.Nombre) == models.RoleSuper {
		writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: "El rol Super no puede eliminarse"})
		return
	}

	referenced, err := h.Users.CountByRole(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar rol"})
		return
	}

	if referenced > 0 {
		deactivated, err := h.Roles.DeactivateRole(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar rol"})
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{
			Success: true,
			Message: "Rol inactivado porque está asignado a usuarios existentes",
			Data:    deactivated,
		})
		return
	}

	if err := h.Roles.DeleteRole(r.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Rol no encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar rol"})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Rol eliminado exitosamente"})
}
