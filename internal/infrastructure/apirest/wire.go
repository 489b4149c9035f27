package apirest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

// Representaciones JSON de la API. Los decimales pueden llegar como número o como
// cadena; decimal.Decimal acepta ambos.

const layoutFecha = "2006-01-02"

// fecha fecha sin hora ("2006-01-02"); acepta también RFC 3339 al leer.
type fecha struct{ time.Time }

func (f fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Format(layoutFecha))
}

func (f *fecha) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		f.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		f.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(layoutFecha, s); err == nil {
		f.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	f.Time = t
	return nil
}

func fechaPtr(f *fecha) *time.Time {
	if f == nil || f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}

func nd(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

type paginaJSON[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func convertirPagina[T, E any](p paginaJSON[T], conv func(T) E) *repository.Pagina[E] {
	out := &repository.Pagina[E]{Count: p.Count, Results: make([]E, 0, len(p.Results))}
	if p.Next != nil {
		out.Next = *p.Next
	}
	if p.Previous != nil {
		out.Previous = *p.Previous
	}
	for _, r := range p.Results {
		out.Results = append(out.Results, conv(r))
	}
	return out
}

// ── Libro ─────────────────────────────────────────────────────────────────────

type libroJSON struct {
	ID        int64               `json:"id,omitempty"`
	Titulo    string              `json:"titulo"`
	PVP       decimal.NullDecimal `json:"pvp"`
	Precio    decimal.NullDecimal `json:"precio"`
	Descuento decimal.NullDecimal `json:"descuento"`
	Cantidad  int                 `json:"cantidad"`
}

func (j libroJSON) entidad() entity.Libro {
	return entity.Libro{
		ID:        j.ID,
		Titulo:    j.Titulo,
		PVP:       nd(j.PVP),
		Precio:    nd(j.Precio),
		Descuento: nd(j.Descuento),
		Cantidad:  j.Cantidad,
	}
}

func libroDesdeEntidad(l *entity.Libro) libroJSON {
	return libroJSON{
		Titulo:    l.Titulo,
		PVP:       decimal.NewNullDecimal(l.PVP),
		Precio:    decimal.NewNullDecimal(l.Precio),
		Descuento: decimal.NewNullDecimal(l.Descuento),
		Cantidad:  l.Cantidad,
	}
}

// cambiosLibroJSON cuerpo del PATCH; solo viajan los campos informados.
type cambiosLibroJSON struct {
	Titulo    *string          `json:"titulo,omitempty"`
	PVP       *decimal.Decimal `json:"pvp,omitempty"`
	Precio    *decimal.Decimal `json:"precio,omitempty"`
	Descuento *decimal.Decimal `json:"descuento,omitempty"`
	Cantidad  *int             `json:"cantidad,omitempty"`
}

// ── Línea de factura ──────────────────────────────────────────────────────────

type lineaJSON struct {
	ID        int64               `json:"id"`
	Factura   int64               `json:"factura"`
	Libro     libroRef            `json:"libro"`
	Cantidad  int                 `json:"cantidad"`
	Precio    decimal.NullDecimal `json:"precio"`
	Descuento decimal.NullDecimal `json:"descuento"`
	Importe   decimal.NullDecimal `json:"importe"`
}

// libroRef el libro de una línea llega anidado o, en algunos endpoints, solo como id.
type libroRef struct{ libroJSON }

func (r *libroRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' {
		if bytes.Equal(b, []byte("null")) {
			return nil
		}
		return json.Unmarshal(b, &r.ID)
	}
	return json.Unmarshal(b, &r.libroJSON)
}

func (j lineaJSON) entidad() entity.LineaFactura {
	l := j.Libro.libroJSON.entidad()
	return entity.LineaFactura{
		ID:        j.ID,
		FacturaID: j.Factura,
		Libro: entity.LibroLinea{
			ID:        l.ID,
			Titulo:    l.Titulo,
			Precio:    l.Precio,
			Descuento: l.Descuento,
			PVP:       l.PVP,
			Cantidad:  l.Cantidad,
		},
		Cantidad:  j.Cantidad,
		Precio:    nd(j.Precio),
		Descuento: nd(j.Descuento),
		Importe:   nd(j.Importe),
	}
}

// nuevaLineaJSON cuerpo de creación; libro viaja como id.
type nuevaLineaJSON struct {
	Factura   int64           `json:"factura,omitempty"`
	Libro     int64           `json:"libro"`
	Cantidad  int             `json:"cantidad"`
	Precio    decimal.Decimal `json:"precio"`
	Descuento decimal.Decimal `json:"descuento"`
	Importe   decimal.Decimal `json:"importe"`
}

func nuevaLinea(n repository.NuevaLinea) nuevaLineaJSON {
	return nuevaLineaJSON{
		Factura:   n.FacturaID,
		Libro:     n.LibroID,
		Cantidad:  n.Cantidad,
		Precio:    n.Precio,
		Descuento: n.Descuento,
		Importe:   n.Importe,
	}
}

type cambiosLineaJSON struct {
	Libro     int64           `json:"libro,omitempty"`
	Cantidad  int             `json:"cantidad"`
	Precio    decimal.Decimal `json:"precio"`
	Descuento decimal.Decimal `json:"descuento"`
}

// ── Factura ───────────────────────────────────────────────────────────────────

type facturaJSON struct {
	ID              int64               `json:"id"`
	Numero          *string             `json:"numero"`
	NumeroBorrador  *string             `json:"numero_borrador"`
	Fecha           fecha               `json:"fecha"`
	Cliente         string              `json:"cliente"`
	Nombre          string              `json:"nombre"`
	NIF             string              `json:"nif"`
	Domicilio       string              `json:"domicilio"`
	CPCiudad        string              `json:"cp_ciudad"`
	Telefono        string              `json:"telefono"`
	Descuento       decimal.NullDecimal `json:"descuento"`
	BaseIVA         decimal.NullDecimal `json:"base_iva"`
	IVA             decimal.NullDecimal `json:"iva"`
	Recargo         decimal.NullDecimal `json:"recargo_equivalencia"`
	GastosEnvio     decimal.NullDecimal `json:"gastos_envio"`
	Total           decimal.NullDecimal `json:"total"`
	Notas           string              `json:"notas"`
	Estado          string              `json:"estado"`
	FechaPago       *fecha              `json:"fecha_pago"`
	MotivoAnulacion string              `json:"motivo_anulacion"`
	Lineas          []lineaJSON         `json:"lineas"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (j facturaJSON) entidad() entity.Factura {
	f := entity.Factura{
		ID:              j.ID,
		Numero:          str(j.Numero),
		NumeroBorrador:  str(j.NumeroBorrador),
		Fecha:           j.Fecha.Time,
		Cliente:         j.Cliente,
		Nombre:          j.Nombre,
		NIF:             j.NIF,
		Domicilio:       j.Domicilio,
		CPCiudad:        j.CPCiudad,
		Telefono:        j.Telefono,
		Descuento:       nd(j.Descuento),
		BaseIVA:         nd(j.BaseIVA),
		IVA:             nd(j.IVA),
		Recargo:         nd(j.Recargo),
		GastosEnvio:     nd(j.GastosEnvio),
		Total:           nd(j.Total),
		Notas:           j.Notas,
		Estado:          entity.EstadoFactura(j.Estado),
		FechaPago:       fechaPtr(j.FechaPago),
		MotivoAnulacion: j.MotivoAnulacion,
	}
	for _, l := range j.Lineas {
		f.Lineas = append(f.Lineas, l.entidad())
	}
	return f
}

// datosFacturaJSON cuerpo de creación y actualización de la cabecera.
type datosFacturaJSON struct {
	Fecha       fecha            `json:"fecha"`
	Cliente     string           `json:"cliente"`
	Nombre      string           `json:"nombre"`
	NIF         string           `json:"nif"`
	Domicilio   string           `json:"domicilio"`
	CPCiudad    string           `json:"cp_ciudad"`
	Telefono    string           `json:"telefono"`
	Notas       string           `json:"notas"`
	Descuento   decimal.Decimal  `json:"descuento"`
	IVA         decimal.Decimal  `json:"iva"`
	Recargo     decimal.Decimal  `json:"recargo_equivalencia"`
	GastosEnvio decimal.Decimal  `json:"gastos_envio"`
	BaseIVA     decimal.Decimal  `json:"base_iva"`
	Total       decimal.Decimal  `json:"total"`
	Estado      string           `json:"estado,omitempty"`
	Lineas      []nuevaLineaJSON `json:"lineas,omitempty"`
}

func datosFactura(d repository.DatosFactura) datosFacturaJSON {
	return datosFacturaJSON{
		Fecha:       fecha{d.Fecha},
		Cliente:     d.Cliente,
		Nombre:      d.Nombre,
		NIF:         d.NIF,
		Domicilio:   d.Domicilio,
		CPCiudad:    d.CPCiudad,
		Telefono:    d.Telefono,
		Notas:       d.Notas,
		Descuento:   d.Descuento,
		IVA:         d.IVA,
		Recargo:     d.Recargo,
		GastosEnvio: d.GastosEnvio,
		BaseIVA:     d.BaseIVA,
		Total:       d.Total,
		Estado:      string(d.Estado),
	}
}

type cambioEstadoJSON struct {
	Estado    string `json:"estado"`
	FechaPago *fecha `json:"fecha_pago,omitempty"`
}

type anularJSON struct {
	Motivo string `json:"motivo"`
}

// ── Empresa ───────────────────────────────────────────────────────────────────

type empresaJSON struct {
	ID        int64     `json:"id,omitempty"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	NIF       string    `json:"nif"`
	GIF       string    `json:"gif"`
	IBAN      string    `json:"iban"`
	CreatedOn time.Time `json:"created_on,omitempty"`
	UpdatedOn time.Time `json:"updated_on,omitempty"`
}

func (j empresaJSON) entidad() entity.Empresa {
	return entity.Empresa{
		ID:        j.ID,
		Nombre:    j.Nombre,
		Direccion: j.Direccion,
		NIF:       j.NIF,
		GIF:       j.GIF,
		IBAN:      j.IBAN,
		CreatedOn: j.CreatedOn,
		UpdatedOn: j.UpdatedOn,
	}
}

type datosEmpresaJSON struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	NIF       string `json:"nif"`
	GIF       string `json:"gif"`
	IBAN      string `json:"iban"`
}

func datosEmpresa(d repository.DatosEmpresa) datosEmpresaJSON {
	return datosEmpresaJSON(d)
}
