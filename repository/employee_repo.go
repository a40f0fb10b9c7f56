package repository

import (
	"context"

	"nominaadmin/models"
)

type EmployeeFilter struct {
	UsuarioID string
	Cargo     string
}

// EmployeeRepository defines the interface for employee operations.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, e *models.Employee) error
	GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, e *models.Employee) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	// HasDuplicate reports whether dpi, igss, nit, cuenta or contratoNo is
	// already taken by an employee other than excludeID (empty to check all).
	HasDuplicate(ctx context.Context, dpi, igss, nit, cuenta, contratoNo, excludeID string) (bool, error)
	CountEmployees(ctx context.Context) (activos, inactivos int64, err error)
	// CountByField counts employees whose banco, renglon or cargo equals value.
	CountByField(ctx context.Context, field, value string) (int64, error)
}
