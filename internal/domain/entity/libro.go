package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Libro representa un libro del inventario (artículo con precio y stock).
// PVP es el precio de venta al público con IVA; Precio es el precio neto.
type Libro struct {
	ID        int64
	Titulo    string
	PVP       decimal.Decimal
	Precio    decimal.Decimal
	Descuento decimal.Decimal // % opcional, 0 si no aplica
	Cantidad  int             // stock disponible, nunca negativo
}

// Validar comprueba las invariantes locales del libro antes de enviarlo a la API.
func (l *Libro) Validar() error {
	if l.Titulo == "" {
		return fmt.Errorf("titulo requerido")
	}
	if l.Cantidad < 0 {
		return fmt.Errorf("la cantidad no puede ser negativa (cantidad=%d)", l.Cantidad)
	}
	return nil
}

// HayStock indica si el stock registrado cubre la cantidad pedida.
func (l *Libro) HayStock(cantidad int) bool {
	return cantidad <= l.Cantidad
}
