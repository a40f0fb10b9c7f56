package repository

import (
	"context"

	"nominaadmin/models"
)

// CatalogRepository defines the interface for catalog lookup rows, keyed by
// catalog type (banco, renglon, puesto).
type CatalogRepository interface {
	CreateEntry(ctx context.Context, tipo string, entry *models.CatalogEntry) error
	GetEntryByID(ctx context.Context, tipo, id string) (*models.CatalogEntry, error)
	GetEntryByName(ctx context.Context, tipo, nombre string) (*models.CatalogEntry, error)
	ListEntries(ctx context.Context, tipo string) ([]*models.CatalogEntry, error)
	UpdateEntry(ctx context.Context, tipo, id string, nombre *string, activo *bool) (*models.CatalogEntry, error)
	DeleteEntry(ctx context.Context, tipo, id string) error
}
