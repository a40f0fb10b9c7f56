package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"nominaadmin/models"
)

type PostgresEmployeeRepo struct {
	DB    *sql.DB
	Users UserRepository
}

func NewPostgresEmployeeRepo(db *sql.DB, users UserRepository) *PostgresEmployeeRepo {
	return &PostgresEmployeeRepo{DB: db, Users: users}
}

const employeeSelect = `
	SELECT id::text, usuario_id::text, direccion, dpi, igss, nit, cargo, banco,
		cuenta, sueldo, bonificacion, fecha_inicio, fecha_finalizacion,
		contrato_no, renglon, activo
	FROM empleado
`

func scanEmployee(row rowScanner) (*models.Employee, error) {
	e := &models.Employee{}
	var usuarioID sql.NullString
	var fin sql.NullTime
	err := row.Scan(&e.ID, &usuarioID, &e.Direccion, &e.DPI, &e.IGSS, &e.NIT,
		&e.Cargo, &e.Banco, &e.Cuenta, &e.Sueldo, &e.Bonificacion,
		&e.FechaInicio, &fin, &e.ContratoNo, &e.Renglon, &e.Activo)
	if err != nil {
		return nil, err
	}
	if usuarioID.Valid {
		e.UsuarioID = usuarioID.String
	}
	if fin.Valid {
		t := fin.Time
		e.FechaFinalizacion = &t
	}
	return e, nil
}

func (r *PostgresEmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	var usuarioID interface{}
	if e.UsuarioID != "" {
		numID, err := strconv.ParseInt(e.UsuarioID, 10, 64)
		if err != nil {
			return err
		}
		usuarioID = numID
	}
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO empleado (usuario_id, direccion, dpi, igss, nit, cargo, banco,
			cuenta, sueldo, bonificacion, fecha_inicio, fecha_finalizacion,
			contrato_no, renglon, activo)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`, usuarioID, e.Direccion, e.DPI, e.IGSS, e.NIT, e.Cargo, e.Banco, e.Cuenta,
		e.Sueldo, e.Bonificacion, e.FechaInicio, e.FechaFinalizacion,
		e.ContratoNo, e.Renglon, e.Activo).Scan(&id)
	if err != nil {
		return err
	}
	e.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostgresEmployeeRepo) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	e, err := scanEmployee(r.DB.QueryRowContext(ctx, employeeSelect+` WHERE id = $1`, numID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.populateUser(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepo) populateUser(ctx context.Context, e *models.Employee) error {
	if e.UsuarioID == "" {
		return nil
	}
	user, err := r.Users.GetUserByID(ctx, e.UsuarioID)
	if err != nil {
		return err
	}
	e.Usuario = user
	return nil
}

func (r *PostgresEmployeeRepo) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error) {
	query := employeeSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.UsuarioID != "" {
		numID, err := strconv.ParseInt(filter.UsuarioID, 10, 64)
		if err != nil {
			return nil, err
		}
		args = append(args, numID)
		query += fmt.Sprintf(" AND usuario_id = $%d", len(args))
	}
	if filter.Cargo != "" {
		args = append(args, filter.Cargo)
		query += fmt.Sprintf(" AND cargo = $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		if err := r.populateUser(ctx, e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *PostgresEmployeeRepo) UpdateEmployee(ctx context.Context, id string, e *models.Employee) (*models.Employee, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	var usuarioID interface{}
	if e.UsuarioID != "" {
		uID, err := strconv.ParseInt(e.UsuarioID, 10, 64)
		if err != nil {
			return nil, err
		}
		usuarioID = uID
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE empleado
		SET usuario_id=$1, direccion=$2, dpi=$3, igss=$4, nit=$5, cargo=$6,
			banco=$7, cuenta=$8, sueldo=$9, bonificacion=$10, fecha_inicio=$11,
			fecha_finalizacion=$12, contrato_no=$13, renglon=$14, activo=$15
		WHERE id=$16
	`, usuarioID, e.Direccion, e.DPI, e.IGSS, e.NIT, e.Cargo, e.Banco, e.Cuenta,
		e.Sueldo, e.Bonificacion, e.FechaInicio, e.FechaFinalizacion,
		e.ContratoNo, e.Renglon, e.Activo, numID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetEmployeeByID(ctx, id)
}

func (r *PostgresEmployeeRepo) DeleteEmployee(ctx context.Context, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM empleado WHERE id = $1`, numID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresEmployeeRepo) HasDuplicate(ctx context.Context, dpi, igss, nit, cuenta, contratoNo, excludeID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM empleado
		WHERE (dpi = $1 OR igss = $2 OR nit = $3 OR cuenta = $4 OR contrato_no = $5)
	`
	args := []interface{}{dpi, igss, nit, cuenta, contratoNo}
	// An unparseable excludeID matches no row, so the exclusion is moot.
	if numID, err := strconv.ParseInt(excludeID, 10, 64); excludeID != "" && err == nil {
		args = append(args, numID)
		query += ` AND id <> $6`
	}
	var n int64
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n)
	return n > 0, err
}

func (r *PostgresEmployeeRepo) CountEmployees(ctx context.Context) (int64, int64, error) {
	var activos, inactivos int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE activo), COUNT(*) FILTER (WHERE NOT activo)
		FROM empleado
	`).Scan(&activos, &inactivos)
	return activos, inactivos, err
}

func (r *PostgresEmployeeRepo) CountByField(ctx context.Context, field, value string) (int64, error) {
	// field comes from a fixed table in the catalog handler, never from input
	switch field {
	case "banco", "renglon", "cargo":
	default:
		return 0, fmt.Errorf("unsupported employee field %q", field)
	}
	var n int64
	err := r.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM empleado WHERE %s = $1`, field), value).Scan(&n)
	return n, err
}
