package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
)

// FiltroFacturas filtros del listado de facturas.
type FiltroFacturas struct {
	Numero     string
	Cliente    string
	Nombre     string
	Estado     entity.EstadoFactura
	FechaDesde *time.Time
	FechaHasta *time.Time
	Page       int
	PageSize   int
}

// DatosFactura cabecera que la consola envía al crear o actualizar.
// BaseIVA y Total ya llegan calculados y redondeados a 2 decimales.
type DatosFactura struct {
	Fecha       time.Time
	Cliente     string
	Nombre      string
	NIF         string
	Domicilio   string
	CPCiudad    string
	Telefono    string
	Notas       string
	Descuento   decimal.Decimal
	IVA         decimal.Decimal
	Recargo     decimal.Decimal
	GastosEnvio decimal.Decimal
	BaseIVA     decimal.Decimal
	Total       decimal.Decimal
	Estado      entity.EstadoFactura
}

// NuevaLinea línea a crear, sola o junto con su factura.
type NuevaLinea struct {
	FacturaID int64 // 0 cuando viaja dentro de la creación de la factura
	LibroID   int64
	Titulo    string
	Cantidad  int
	Precio    decimal.Decimal
	Descuento decimal.Decimal
	Importe   decimal.Decimal
}

// CambiosLinea actualización de una línea existente.
type CambiosLinea struct {
	LibroID   int64
	Cantidad  int
	Precio    decimal.Decimal
	Descuento decimal.Decimal
}

// FacturaRepository define el puerto de acceso remoto para Factura.
type FacturaRepository interface {
	Listar(ctx context.Context, u entity.Usuario, f FiltroFacturas) (*Pagina[entity.Factura], error)
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.Factura, error)
	Crear(ctx context.Context, u entity.Usuario, datos DatosFactura, lineas []NuevaLinea) (*entity.Factura, error)
	Actualizar(ctx context.Context, u entity.Usuario, id int64, datos DatosFactura) (*entity.Factura, error)
	// CambiarEstado envía solo estado y, si aplica, fecha de pago (PATCH).
	CambiarEstado(ctx context.Context, u entity.Usuario, id int64, estado entity.EstadoFactura, fechaPago *time.Time) (*entity.Factura, error)
	Eliminar(ctx context.Context, u entity.Usuario, id int64) error
	Emitir(ctx context.Context, u entity.Usuario, id int64) (*entity.Factura, error)
	Anular(ctx context.Context, u entity.Usuario, id int64, motivo string) (*entity.Factura, error)
	// DescargarPDF devuelve el PDF generado por la API; mostrarIban incluye los datos bancarios.
	DescargarPDF(ctx context.Context, u entity.Usuario, id int64, mostrarIban bool) ([]byte, error)
}

// LineaFacturaRepository define el puerto de acceso remoto para las líneas.
type LineaFacturaRepository interface {
	ListarPorFactura(ctx context.Context, u entity.Usuario, facturaID int64) ([]entity.LineaFactura, error)
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.LineaFactura, error)
	Crear(ctx context.Context, u entity.Usuario, linea NuevaLinea) (*entity.LineaFactura, error)
	Actualizar(ctx context.Context, u entity.Usuario, id int64, cambios CambiosLinea) (*entity.LineaFactura, error)
	Eliminar(ctx context.Context, u entity.Usuario, id int64) error
}
