package entity

import "github.com/shopspring/decimal"

// LibroLinea copia desnormalizada del libro en el momento de añadirlo a la factura.
type LibroLinea struct {
	ID        int64
	Titulo    string
	Precio    decimal.Decimal
	Descuento decimal.Decimal
	PVP       decimal.Decimal
	Cantidad  int
}

// LineaFactura representa una línea de detalle. Pertenece en exclusiva a su factura.
type LineaFactura struct {
	ID        int64
	FacturaID int64
	Libro     LibroLinea
	Cantidad  int
	Precio    decimal.Decimal
	Descuento decimal.Decimal
	Importe   decimal.Decimal
}
