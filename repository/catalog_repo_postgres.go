package repository

import (
	"context"
	"database/sql"
	"strconv"

	"nominaadmin/models"
)

type PostgresCatalogRepo struct {
	DB *sql.DB
}

func NewPostgresCatalogRepo(db *sql.DB) *PostgresCatalogRepo {
	return &PostgresCatalogRepo{DB: db}
}

func (r *PostgresCatalogRepo) CreateEntry(ctx context.Context, tipo string, entry *models.CatalogEntry) error {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO catalogo (tipo, nombre, activo) VALUES ($1, $2, $3) RETURNING id
	`, tipo, entry.Nombre, entry.Activo).Scan(&id)
	if err != nil {
		return err
	}
	entry.ID = strconv.FormatInt(id, 10)
	entry.Tipo = tipo
	return nil
}

func (r *PostgresCatalogRepo) GetEntryByID(ctx context.Context, tipo, id string) (*models.CatalogEntry, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT id::text, tipo, nombre, activo FROM catalogo WHERE id = $1 AND tipo = $2`, numID, tipo)
}

func (r *PostgresCatalogRepo) GetEntryByName(ctx context.Context, tipo, nombre string) (*models.CatalogEntry, error) {
	return r.findOne(ctx, `SELECT id::text, tipo, nombre, activo FROM catalogo WHERE tipo = $1 AND nombre = $2`, tipo, nombre)
}

func (r *PostgresCatalogRepo) findOne(ctx context.Context, query string, args ...interface{}) (*models.CatalogEntry, error) {
	entry := &models.CatalogEntry{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.Tipo, &entry.Nombre, &entry.Activo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r *PostgresCatalogRepo) ListEntries(ctx context.Context, tipo string) ([]*models.CatalogEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id::text, tipo, nombre, activo FROM catalogo WHERE tipo = $1 ORDER BY nombre`, tipo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.CatalogEntry
	for rows.Next() {
		entry := &models.CatalogEntry{}
		if err := rows.Scan(&entry.ID, &entry.Tipo, &entry.Nombre, &entry.Activo); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PostgresCatalogRepo) UpdateEntry(ctx context.Context, tipo, id string, nombre *string, activo *bool) (*models.CatalogEntry, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE catalogo
		SET nombre = COALESCE($1, nombre), activo = COALESCE($2, activo)
		WHERE id = $3 AND tipo = $4
	`, nombre, activo, numID, tipo)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetEntryByID(ctx, tipo, id)
}

func (r *PostgresCatalogRepo) DeleteEntry(ctx context.Context, tipo, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM catalogo WHERE id = $1 AND tipo = $2`, numID, tipo)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
