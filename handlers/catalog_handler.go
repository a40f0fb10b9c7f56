package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"nominaadmin/models"
	"nominaadmin/repository"
)

type CatalogHandler struct {
	Catalogs  repository.CatalogRepository
	Employees repository.EmployeeRepository
}

// employeeFieldFor maps a catalog type to the employee column holding its
// value, used to decide whether an entry is still referenced.
func employeeFieldFor(tipo string) string {
	switch tipo {
	case models.CatalogBanco:
		return "banco"
	case models.CatalogRenglon:
		return "renglon"
	case models.CatalogPuesto:
		return "cargo"
	}
	return ""
}

// Serve dispatches /api/protected/catalogos/{tipo} by method.
func (h *CatalogHandler) Serve(w http.ResponseWriter, r *http.Request, tipo string) {
	if !models.ValidCatalogType(tipo) {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Tipo de catálogo no válido"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, tipo)
	case http.MethodPost:
		h.create(w, r, tipo)
	case http.MethodPut:
		h.update(w, r, tipo)
	case http.MethodDelete:
		h.delete(w, r, tipo)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, tipo string) {
	entries, err := h.Catalogs.ListEntries(r.Context(), tipo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener el catálogo"})
		return
	}
	if entries == nil {
		entries = []*models.CatalogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *CatalogHandler) create(w http.ResponseWriter, r *http.Request, tipo string) {
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

	existing, err := h.Catalogs.GetEntryByName(r.Context(), tipo, req.Nombre)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear el registro"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El registro ya existe"})
		return
	}

	entry := &models.CatalogEntry{Nombre: req.Nombre, Activo: true}
	if err := h.Catalogs.CreateEntry(r.Context(), tipo, entry); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear el registro"})
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request, tipo string) {
	var req struct {
		ID     string  `json:"id"`
		Nombre *string `json:"nombre"`
		Activo *bool   `json:"activo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El campo id es obligatorio"})
		return
	}

	updated, err := h.Catalogs.UpdateEntry(r.Context(), tipo, req.ID, req.Nombre, req.Activo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar el registro"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Registro no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// delete hard-deletes an unreferenced entry; a referenced one is only
// deactivated so existing employee rows keep resolving.
func (h *CatalogHandler) delete(w http.ResponseWriter, r *http.Request, tipo string) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El campo id es obligatorio"})
		return
	}

	entry, err := h.Catalogs.GetEntryByID(r.Context(), tipo, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar el registro"})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Registro no encontrado"})
		return
	}

	referenced, err := h.Employees.CountByField(r.Context(), employeeFieldFor(tipo), entry.Nombre)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar el registro"})
		return
	}

	if referenced > 0 {
		inactive := false
		deactivated, err := h.Catalogs.UpdateEntry(r.Context(), tipo, id, nil, &inactive)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar el registro"})
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{
			Success: true,
			Message: "Registro inactivado porque está en uso",
			Data:    deactivated,
		})
		return
	}

	if err := h.Catalogs.DeleteEntry(r.Context(), tipo, id); err != nil {
		if err == repository.ErrNotFound {
			writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Registro no encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar el registro"})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Registro eliminado exitosamente"})
}
