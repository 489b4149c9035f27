package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoFactura ciclo de vida de una factura.
type EstadoFactura string

const (
	EstadoBorrador EstadoFactura = "borrador"
	EstadoEmitida  EstadoFactura = "emitida"
	EstadoPagada   EstadoFactura = "pagada"
	EstadoAnulada  EstadoFactura = "anulada"
)

// Valido indica si el estado pertenece a la enumeración cerrada.
func (e EstadoFactura) Valido() bool {
	switch e {
	case EstadoBorrador, EstadoEmitida, EstadoPagada, EstadoAnulada:
		return true
	}
	return false
}

func (e EstadoFactura) String() string { return string(e) }

// Factura cabecera de una factura con sus líneas. Los datos del cliente son texto libre.
type Factura struct {
	ID              int64
	Numero          string // número oficial; vacío hasta emitir
	NumeroBorrador  string
	Fecha           time.Time
	Cliente         string
	Nombre          string
	NIF             string
	Domicilio       string
	CPCiudad        string
	Telefono        string
	Descuento       decimal.Decimal // % general
	BaseIVA         decimal.Decimal
	IVA             decimal.Decimal // %
	Recargo         decimal.Decimal // % recargo de equivalencia
	GastosEnvio     decimal.Decimal
	Total           decimal.Decimal
	Notas           string
	Estado          EstadoFactura
	FechaPago       *time.Time
	MotivoAnulacion string
	Lineas          []LineaFactura
}

// NumeroVisible devuelve el número oficial o, en su defecto, el de borrador.
func (f *Factura) NumeroVisible() string {
	if f.Numero != "" {
		return f.Numero
	}
	return f.NumeroBorrador
}

// Importes devuelve el importe de cada línea en orden.
func (f *Factura) Importes() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(f.Lineas))
	for _, l := range f.Lineas {
		out = append(out, l.Importe)
	}
	return out
}
