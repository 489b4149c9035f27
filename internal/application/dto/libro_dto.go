package dto

import "github.com/shopspring/decimal"

// LibroListRequest query de GET /api/libros.
type LibroListRequest struct {
	PageRequest
	Titulo string `query:"titulo"`
}

// CrearLibroRequest body para POST /api/libros.
type CrearLibroRequest struct {
	Titulo    string          `json:"titulo"`
	PVP       decimal.Decimal `json:"pvp"`
	Precio    decimal.Decimal `json:"precio"`
	Descuento decimal.Decimal `json:"descuento"`
	Cantidad  int             `json:"cantidad"`
}

// ActualizarLibroRequest body para PATCH /api/libros/:id; los campos ausentes no cambian.
type ActualizarLibroRequest struct {
	Titulo    *string          `json:"titulo,omitempty"`
	PVP       *decimal.Decimal `json:"pvp,omitempty"`
	Precio    *decimal.Decimal `json:"precio,omitempty"`
	Descuento *decimal.Decimal `json:"descuento,omitempty"`
	Cantidad  *int             `json:"cantidad,omitempty"`
}

// ImportarLibroRequest fila de un catálogo importado. Al actualizar, los importes nulos
// no cambian; al crear valen 0.
type ImportarLibroRequest struct {
	Titulo    string           `json:"titulo"`
	PVP       *decimal.Decimal `json:"pvp,omitempty"`
	Precio    *decimal.Decimal `json:"precio,omitempty"`
	Descuento *decimal.Decimal `json:"descuento,omitempty"`
	Cantidad  int              `json:"cantidad"`
}

// LibroResponse libro en respuestas.
type LibroResponse struct {
	ID        int64           `json:"id"`
	Titulo    string          `json:"titulo"`
	PVP       decimal.Decimal `json:"pvp"`
	Precio    decimal.Decimal `json:"precio"`
	Descuento decimal.Decimal `json:"descuento"`
	Cantidad  int             `json:"cantidad"`
}
