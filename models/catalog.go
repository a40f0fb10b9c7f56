package models

// CatalogEntry is a simple lookup row (bancos, renglones, puestos).
type CatalogEntry struct {
	ID     string `json:"id" db:"id"`
	Tipo   string `json:"-" db:"tipo"`
	Nombre string `json:"nombre" db:"nombre"`
	Activo bool   `json:"activo" db:"activo"`
}

const (
	CatalogBanco   = "banco"
	CatalogRenglon = "renglon"
	CatalogPuesto  = "puesto"
)

func ValidCatalogType(tipo string) bool {
	switch tipo {
	case CatalogBanco, CatalogRenglon, CatalogPuesto:
		return true
	}
	return false
}
