package repository

import (
	"context"
	"database/sql"
	"strconv"

	"nominaadmin/models"
)

type PostgresRoleRepo struct {
	DB *sql.DB
}

func NewPostgresRoleRepo(db *sql.DB) *PostgresRoleRepo {
	return &PostgresRoleRepo{DB: db}
}

func (r *PostgresRoleRepo) CreateRole(ctx context.Context, role *models.Role) error {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO rol (nombre, activo) VALUES ($1, $2) RETURNING id
	`, role.Nombre, role.Activo).Scan(&id)
	if err != nil {
		return err
	}
	role.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostgresRoleRepo) GetRoleByID(ctx context.Context, id string) (*models.Role, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT id::text, nombre, activo FROM rol WHERE id = $1`, numID)
}

func (r *PostgresRoleRepo) GetRoleByName(ctx context.Context, nombre string) (*models.Role, error) {
	return r.findOne(ctx, `SELECT id::text, nombre, activo FROM rol WHERE nombre = $1`, nombre)
}

func (r *PostgresRoleRepo) findOne(ctx context.Context, query string, args ...interface{}) (*models.Role, error) {
	role := &models.Role{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&role.ID, &role.Nombre, &role.Activo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return role, nil
}

// ListRoles returns roles excluding the protected Super role.
func (r *PostgresRoleRepo) ListRoles(ctx context.Context, activo *bool) ([]*models.Role, error) {
	query := `SELECT id::text, nombre, activo FROM rol WHERE nombre <> $1`
	args := []interface{}{models.RoleNameSuper}
	if activo != nil {
		args = append(args, *activo)
		query += ` AND activo = $2`
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Nombre, &role.Activo); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *PostgresRoleRepo) RenameRole(ctx context.Context, id, nombre string) (*models.Role, error) {
	return r.update(ctx, id, `UPDATE rol SET nombre = $1 WHERE id = $2`, nombre)
}

func (r *PostgresRoleRepo) DeactivateRole(ctx context.Context, id string) (*models.Role, error) {
	return r.update(ctx, id, `UPDATE rol SET activo = false WHERE id = $1`)
}

func (r *PostgresRoleRepo) update(ctx context.Context, id, query string, extra ...interface{}) (*models.Role, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	args := append(extra, numID)
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetRoleByID(ctx, id)
}

func (r *PostgresRoleRepo) DeleteRole(ctx context.Context, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rol WHERE id = $1`, numID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
