package facturacion

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// ParametrosTotales porcentajes e importes fijos que intervienen en el total.
// El valor cero de cada campo equivale a "no aplica".
type ParametrosTotales struct {
	Descuento   decimal.Decimal // % descuento general
	IVA         decimal.Decimal // %
	Recargo     decimal.Decimal // % recargo de equivalencia
	GastosEnvio decimal.Decimal
}

// Totales desglose del cálculo de una factura. Los importes intermedios no se redondean.
type Totales struct {
	SumaYSigue       decimal.Decimal `json:"suma_y_sigue"`
	ImporteDescuento decimal.Decimal `json:"importe_descuento"`
	BaseIVA          decimal.Decimal `json:"base_iva"`
	ImporteIVA       decimal.Decimal `json:"importe_iva"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ImporteRecargo   decimal.Decimal `json:"importe_recargo"`
	GastosEnvio      decimal.Decimal `json:"gastos_envio"`
	Total            decimal.Decimal `json:"total"`
}

// CalcularTotales aplica, en este orden y sin conmutar pasos:
//
//	sumaYSigue       = Σ importe
//	importeDescuento = sumaYSigue * descuento/100
//	baseIva          = sumaYSigue - importeDescuento
//	importeIva       = baseIva * iva/100
//	subtotal         = baseIva + importeIva
//	importeRecargo   = subtotal * recargo/100
//	total            = subtotal + gastosEnvio + importeRecargo
//
// El recargo se calcula sobre el subtotal antes de sumar el envío.
// Las entradas negativas no se rechazan; la API remota es quien valida.
func CalcularTotales(importes []decimal.Decimal, p ParametrosTotales) Totales {
	suma := decimal.Zero
	for _, imp := range importes {
		suma = suma.Add(imp)
	}
	importeDescuento := suma.Mul(p.Descuento).Div(cien)
	base := suma.Sub(importeDescuento)
	importeIVA := base.Mul(p.IVA).Div(cien)
	subtotal := base.Add(importeIVA)
	importeRecargo := subtotal.Mul(p.Recargo).Div(cien)
	return Totales{
		SumaYSigue:       suma,
		ImporteDescuento: importeDescuento,
		BaseIVA:          base,
		ImporteIVA:       importeIVA,
		Subtotal:         subtotal,
		ImporteRecargo:   importeRecargo,
		GastosEnvio:      p.GastosEnvio,
		Total:            subtotal.Add(p.GastosEnvio).Add(importeRecargo),
	}
}

// Redondeados devuelve una copia con todos los importes a 2 decimales (persistencia y pantalla).
func (t Totales) Redondeados() Totales {
	return Totales{
		SumaYSigue:       t.SumaYSigue.Round(2),
		ImporteDescuento: t.ImporteDescuento.Round(2),
		BaseIVA:          t.BaseIVA.Round(2),
		ImporteIVA:       t.ImporteIVA.Round(2),
		Subtotal:         t.Subtotal.Round(2),
		ImporteRecargo:   t.ImporteRecargo.Round(2),
		GastosEnvio:      t.GastosEnvio.Round(2),
		Total:            t.Total.Round(2),
	}
}

// ImporteLinea importe de una línea en el editor: precio * cantidad.
// El descuento por línea lo aplica la API al persistir.
func ImporteLinea(precio decimal.Decimal, cantidad int) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad)))
}
