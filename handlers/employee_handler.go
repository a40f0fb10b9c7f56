package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"nominaadmin/models"
	"nominaadmin/repository"
)

type EmployeeHandler struct {
	Employees repository.EmployeeRepository
	Users     repository.UserRepository
}

// employeeRequest carries employee payloads; usuario is the referenced user
// id on the wire, populated to a full object on reads.
type employeeRequest struct {
	Usuario           string     `json:"usuario"`
	Direccion         string     `json:"direccion"`
	DPI               string     `json:"dpi"`
	IGSS              string     `json:"igss"`
	NIT               string     `json:"nit"`
	Cargo             string     `json:"cargo"`
	Banco             string     `json:"banco"`
	Cuenta            string     `json:"cuenta"`
	Sueldo            float64    `json:"sueldo"`
	Bonificacion      float64    `json:"bonificacion"`
	FechaInicio       time.Time  `json:"fechaInicio"`
	FechaFinalizacion *time.Time `json:"fechaFinalizacion"`
	ContratoNo        string     `json:"contratoNo"`
	Renglon           string     `json:"renglon"`
	Activo            *bool      `json:"activo"`
}

func (req *employeeRequest) toModel() *models.Employee {
	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}
	return &models.Employee{
		UsuarioID:         req.Usuario,
		Direccion:         req.Direccion,
		DPI:               req.DPI,
		IGSS:              req.IGSS,
		NIT:               req.NIT,
		Cargo:             req.Cargo,
		Banco:             req.Banco,
		Cuenta:            req.Cuenta,
		Sueldo:            req.Sueldo,
		Bonificacion:      req.Bonificacion,
		FechaInicio:       req.FechaInicio,
		FechaFinalizacion: req.FechaFinalizacion,
		ContratoNo:        req.ContratoNo,
		Renglon:           req.Renglon,
		Activo:            activo,
	}
}

func (req *employeeRequest) validate() string {
	switch {
	case req.Direccion == "":
		return "El campo direccion es obligatorio"
	case req.DPI == "":
		return "El campo dpi es obligatorio"
	case req.IGSS == "":
		return "El campo igss es obligatorio"
	case req.NIT == "":
		return "El campo nit es obligatorio"
	case req.Cargo == "":
		return "El campo cargo es obligatorio"
	case req.Banco == "":
		return "El campo banco es obligatorio"
	case req.Cuenta == "":
		return "El campo cuenta es obligatorio"
	case req.ContratoNo == "":
		return "El campo contratoNo es obligatorio"
	case req.Renglon == "":
		return "El campo renglon es obligatorio"
	case req.FechaInicio.IsZero():
		return "El campo fechaInicio es obligatorio"
	}
	return ""
}

// List returns employees filtered by usuario/cargo.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.EmployeeFilter{
		UsuarioID: r.URL.Query().Get("usuario"),
		Cargo:     r.URL.Query().Get("cargo"),
	}

	employees, err := h.Employees.ListEmployees(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener empleados"})
		return
	}
	if employees == nil {
		employees = []*models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: msg})
		return
	}

	if req.Usuario != "" {
		user, err := h.Users.GetUserByID(r.Context(), req.Usuario)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear empleado"})
			return
		}
		if user == nil {
			writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "El usuario asociado no existe"})
			return
		}
	}

	duplicate, err := h.Employees.HasDuplicate(r.Context(), req.DPI, req.IGSS, req.NIT, req.Cuenta, req.ContratoNo, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear empleado"})
		return
	}
	if duplicate {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "DPI, IGSS, NIT, Cuenta o Contrato ya están registrados"})
		return
	}

	employee := req.toModel()
	if err := h.Employees.CreateEmployee(r.Context(), employee); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al crear empleado"})
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Empleado creado exitosamente",
		Data:    employee,
	})
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	employee, err := h.Employees.GetEmployeeByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al obtener empleado"})
		return
	}
	if employee == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Empleado no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Invalid request payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: msg})
		return
	}

	// The replaced identifiers must stay unique across the other employees.
	duplicate, err := h.Employees.HasDuplicate(r.Context(), req.DPI, req.IGSS, req.NIT, req.Cuenta, req.ContratoNo, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar empleado"})
		return
	}
	if duplicate {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "DPI, IGSS, NIT, Cuenta o Contrato ya están registrados"})
		return
	}

	updated, err := h.Employees.UpdateEmployee(r.Context(), id, req.toModel())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al actualizar empleado"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Empleado no encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete hard-deletes; employees have no references pointing at them.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Employees.DeleteEmployee(r.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Empleado no encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al eliminar empleado"})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Empleado eliminado correctamente"})
}

func (h *EmployeeHandler) Count(w http.ResponseWriter, r *http.Request) {
	activos, inactivos, err := h.Employees.CountEmployees(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: "Error al contar empleados"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Activos   int64 `json:"activos"`
		Inactivos int64 `json:"inactivos"`
	}{activos, inactivos})
}
