package entity

import "time"

// Empresa datos fiscales del emisor de las facturas. Existe una sola por instalación:
// se crea una vez y después solo se actualiza.
type Empresa struct {
	ID        int64
	Nombre    string
	Direccion string
	NIF       string
	GIF       string
	IBAN      string
	CreatedOn time.Time
	UpdatedOn time.Time
}
