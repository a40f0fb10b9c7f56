package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"nominaadmin/models"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

const userSelect = `
	SELECT u.id::text, u.email, u.password, u.rol_id::text, u.sesion,
		u.activo, u.verificado, u.created_at, u.updated_at,
		r.id::text, r.nombre, r.activo
	FROM usuario u
	JOIN rol r ON r.id = u.rol_id
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{Rol: &models.Role{}}
	var sesion sql.NullTime
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.RoleID, &sesion,
		&user.Activo, &user.Verificado, &user.CreatedAt, &user.UpdatedAt,
		&user.Rol.ID, &user.Rol.Nombre, &user.Rol.Activo)
	if err != nil {
		return nil, err
	}
	if sesion.Valid {
		t := sesion.Time
		user.Sesion = &t
	}
	return user, nil
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	roleID, err := strconv.ParseInt(user.RoleID, 10, 64)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	var id int64
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO usuario (email, password, rol_id, sesion, activo, verificado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`, user.Email, user.Password, roleID, user.Sesion, user.Activo, user.Verificado, now).Scan(&id)
	if err != nil {
		return err
	}
	user.ID = strconv.FormatInt(id, 10)
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE u.email = $1`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	user, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, numID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	query := userSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.RoleID != "" {
		roleID, err := strconv.ParseInt(filter.RoleID, 10, 64)
		if err != nil {
			return nil, err
		}
		args = append(args, roleID)
		query += fmt.Sprintf(" AND u.rol_id = $%d", len(args))
	}
	if filter.Activo != nil {
		args = append(args, *filter.Activo)
		query += fmt.Sprintf(" AND u.activo = $%d", len(args))
	}
	if filter.SesionLive != nil {
		args = append(args, time.Now().UTC().Add(-models.SessionWindow))
		if *filter.SesionLive {
			query += fmt.Sprintf(" AND u.sesion >= $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND (u.sesion IS NULL OR u.sesion < $%d)", len(args))
		}
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepo) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	columns := map[string]string{
		"email":      "email",
		"password":   "password",
		"rol":        "rol_id",
		"sesion":     "sesion",
		"activo":     "activo",
		"verificado": "verificado",
	}

	set := "updated_at = now()"
	args := []interface{}{}
	for key, value := range fields {
		column, ok := columns[key]
		if !ok {
			continue
		}
		if key == "rol" {
			roleID, err := strconv.ParseInt(value.(string), 10, 64)
			if err != nil {
				return nil, err
			}
			value = roleID
		}
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	args = append(args, numID)
	res, err := r.DB.ExecContext(ctx,
		fmt.Sprintf("UPDATE usuario SET %s WHERE id = $%d", set, len(args)), args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetUserByID(ctx, id)
}

func (r *PostgresUserRepo) UpdateSession(ctx context.Context, id string, at time.Time) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `UPDATE usuario SET sesion = $1 WHERE id = $2`, at, numID)
	return err
}

func (r *PostgresUserRepo) CountByRole(ctx context.Context, roleID string) (int64, error) {
	numID, err := strconv.ParseInt(roleID, 10, 64)
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuario WHERE rol_id = $1`, numID).Scan(&n)
	return n, err
}
