package models

import "time"

type Employee struct {
	ID                string     `json:"id" db:"id"`
	UsuarioID         string     `json:"-" db:"usuario_id"`
	Usuario           *User      `json:"usuario,omitempty"`
	Direccion         string     `json:"direccion" db:"direccion"`
	DPI               string     `json:"dpi" db:"dpi"`
	IGSS              string     `json:"igss" db:"igss"`
	NIT               string     `json:"nit" db:"nit"`
	Cargo             string     `json:"cargo" db:"cargo"`
	Banco             string     `json:"banco" db:"banco"`
	Cuenta            string     `json:"cuenta" db:"cuenta"`
	Sueldo            float64    `json:"sueldo" db:"sueldo"`
	Bonificacion      float64    `json:"bonificacion" db:"bonificacion"`
	FechaInicio       time.Time  `json:"fechaInicio" db:"fecha_inicio"`
	FechaFinalizacion *time.Time `json:"fechaFinalizacion" db:"fecha_finalizacion"`
	ContratoNo        string     `json:"contratoNo" db:"contrato_no"`
	Renglon           string     `json:"renglon" db:"renglon"`
	Activo            bool       `json:"activo" db:"activo"`
}
