package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
)

// FacturaListRequest query de GET /api/facturas. Fechas en formato 2006-01-02.
type FacturaListRequest struct {
	PageRequest
	Numero     string `query:"numero"`
	Cliente    string `query:"cliente"`
	Nombre     string `query:"nombre"`
	Estado     string `query:"estado"`
	FechaDesde string `query:"fecha_desde"`
	FechaHasta string `query:"fecha_hasta"`
}

// CabeceraFacturaRequest datos del cliente y porcentajes de una factura.
type CabeceraFacturaRequest struct {
	Fecha       string          `json:"fecha"` // 2006-01-02; vacío = hoy
	Cliente     string          `json:"cliente"`
	Nombre      string          `json:"nombre"`
	NIF         string          `json:"nif"`
	Domicilio   string          `json:"domicilio"`
	CPCiudad    string          `json:"cp_ciudad"`
	Telefono    string          `json:"telefono"`
	Notas       string          `json:"notas"`
	Descuento   decimal.Decimal `json:"descuento"`
	IVA         decimal.Decimal `json:"iva"`
	Recargo     decimal.Decimal `json:"recargo_equivalencia"`
	GastosEnvio decimal.Decimal `json:"gastos_envio"`
}

// LineaRequest línea en el formulario. ID nulo = línea nueva.
type LineaRequest struct {
	ID        *int64           `json:"id,omitempty"`
	LibroID   int64            `json:"libro"`
	Cantidad  int              `json:"cantidad"`
	Precio    *decimal.Decimal `json:"precio,omitempty"` // nulo = precio del libro
	Descuento decimal.Decimal  `json:"descuento"`
}

// GuardarFacturaRequest body de POST /api/facturas y PUT /api/facturas/:id.
// En la actualización, las líneas guardadas que no aparezcan se eliminan.
type GuardarFacturaRequest struct {
	CabeceraFacturaRequest
	Lineas []LineaRequest `json:"lineas"`
}

// AnularFacturaRequest body de POST /api/facturas/:id/anular.
type AnularFacturaRequest struct {
	Motivo string `json:"motivo"`
}

// PagarFacturaRequest body de POST /api/facturas/:id/pagar.
type PagarFacturaRequest struct {
	FechaPago string `json:"fecha_pago"` // 2006-01-02; vacío = hoy
}

// CalcularTotalesRequest body de POST /api/facturas/calcular.
type CalcularTotalesRequest struct {
	Importes    []decimal.Decimal `json:"importes"`
	Descuento   decimal.Decimal   `json:"descuento"`
	IVA         decimal.Decimal   `json:"iva"`
	Recargo     decimal.Decimal   `json:"recargo_equivalencia"`
	GastosEnvio decimal.Decimal   `json:"gastos_envio"`
}

// Parametros convierte los porcentajes al tipo de la calculadora.
func (r CalcularTotalesRequest) Parametros() facturacion.ParametrosTotales {
	return facturacion.ParametrosTotales{
		Descuento:   r.Descuento,
		IVA:         r.IVA,
		Recargo:     r.Recargo,
		GastosEnvio: r.GastosEnvio,
	}
}

// Parametros porcentajes de la cabecera para la calculadora.
func (r CabeceraFacturaRequest) Parametros() facturacion.ParametrosTotales {
	return facturacion.ParametrosTotales{
		Descuento:   r.Descuento,
		IVA:         r.IVA,
		Recargo:     r.Recargo,
		GastosEnvio: r.GastosEnvio,
	}
}

// LineaFacturaResponse línea en respuestas.
type LineaFacturaResponse struct {
	ID          int64           `json:"id"`
	FacturaID   int64           `json:"factura"`
	LibroID     int64           `json:"libro"`
	LibroTitulo string          `json:"libro_titulo"`
	Cantidad    int             `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Descuento   decimal.Decimal `json:"descuento"`
	Importe     decimal.Decimal `json:"importe"`
}

// FacturaResponse factura con líneas y desglose calculado.
type FacturaResponse struct {
	ID              int64                  `json:"id"`
	Numero          string                 `json:"numero,omitempty"`
	NumeroBorrador  string                 `json:"numero_borrador,omitempty"`
	Fecha           string                 `json:"fecha"`
	Cliente         string                 `json:"cliente"`
	Nombre          string                 `json:"nombre"`
	NIF             string                 `json:"nif"`
	Domicilio       string                 `json:"domicilio"`
	CPCiudad        string                 `json:"cp_ciudad"`
	Telefono        string                 `json:"telefono"`
	Descuento       decimal.Decimal        `json:"descuento"`
	IVA             decimal.Decimal        `json:"iva"`
	Recargo         decimal.Decimal        `json:"recargo_equivalencia"`
	GastosEnvio     decimal.Decimal        `json:"gastos_envio"`
	BaseIVA         decimal.Decimal        `json:"base_iva"`
	Total           decimal.Decimal        `json:"total"`
	Notas           string                 `json:"notas,omitempty"`
	Estado          string                 `json:"estado"`
	FechaPago       string                 `json:"fecha_pago,omitempty"`
	MotivoAnulacion string                 `json:"motivo_anulacion,omitempty"`
	Lineas          []LineaFacturaResponse `json:"lineas"`
	Totales         *facturacion.Totales   `json:"totales,omitempty"`
}

// CrearLineaRequest body de POST /api/lineas-factura.
type CrearLineaRequest struct {
	FacturaID int64            `json:"factura"`
	LibroID   int64            `json:"libro"`
	Cantidad  int              `json:"cantidad"`
	Precio    *decimal.Decimal `json:"precio,omitempty"` // nulo = precio del libro
	Descuento decimal.Decimal  `json:"descuento"`
}

// ActualizarLineaRequest body de PATCH /api/lineas-factura/:id.
type ActualizarLineaRequest struct {
	FacturaID int64            `json:"factura,omitempty"`
	LibroID   int64            `json:"libro,omitempty"` // 0 = mismo libro
	Cantidad  int              `json:"cantidad"`
	Precio    *decimal.Decimal `json:"precio,omitempty"` // nulo = precio guardado
	Descuento decimal.Decimal  `json:"descuento"`
}
