package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/apirest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios falsos que anotan cada llamada en un registro común
// ──────────────────────────────────────────────────────────────────────────────

type registro struct{ llamadas []string }

func (r *registro) anotar(format string, args ...any) {
	r.llamadas = append(r.llamadas, fmt.Sprintf(format, args...))
}

type librosFake struct {
	reg    *registro
	libros map[int64]entity.Libro
	err    error
}

var _ repository.LibroRepository = (*librosFake)(nil)

func (f *librosFake) Listar(_ context.Context, u entity.Usuario, fl repository.FiltroLibros) (*repository.Pagina[entity.Libro], error) {
	f.reg.anotar("libros.listar")
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	if f.err != nil {
		return nil, f.err
	}
	p := &repository.Pagina[entity.Libro]{}
	for id := int64(1); id <= int64(len(f.libros)); id++ {
		if l, ok := f.libros[id]; ok {
			p.Results = append(p.Results, l)
		}
	}
	p.Count = len(p.Results)
	return p, nil
}

func (f *librosFake) Obtener(_ context.Context, _ entity.Usuario, id int64) (*entity.Libro, error) {
	f.reg.anotar("libros.obtener:%d", id)
	l, ok := f.libros[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (f *librosFake) Crear(_ context.Context, _ entity.Usuario, l *entity.Libro) (*entity.Libro, error) {
	f.reg.anotar("libros.crear")
	c := *l
	c.ID = int64(len(f.libros) + 1)
	f.libros[c.ID] = c
	return &c, nil
}

func (f *librosFake) Actualizar(_ context.Context, _ entity.Usuario, id int64, c repository.CambiosLibro) (*entity.Libro, error) {
	f.reg.anotar("libros.actualizar:%d", id)
	l := f.libros[id]
	if c.Cantidad != nil {
		l.Cantidad = *c.Cantidad
	}
	if c.Precio != nil {
		l.Precio = *c.Precio
	}
	f.libros[id] = l
	return &l, nil
}

func (f *librosFake) Eliminar(_ context.Context, _ entity.Usuario, id int64) error {
	f.reg.anotar("libros.eliminar:%d", id)
	if f.err != nil {
		return f.err
	}
	delete(f.libros, id)
	return nil
}

type facturasFake struct {
	reg      *registro
	facturas map[int64]*entity.Factura
	creada   *repository.DatosFactura
	lineas   []repository.NuevaLinea
	err      error
}

var _ repository.FacturaRepository = (*facturasFake)(nil)

func (f *facturasFake) Listar(_ context.Context, _ entity.Usuario, _ repository.FiltroFacturas) (*repository.Pagina[entity.Factura], error) {
	f.reg.anotar("facturas.listar")
	if f.err != nil {
		return nil, f.err
	}
	p := &repository.Pagina[entity.Factura]{}
	for _, fac := range f.facturas {
		p.Results = append(p.Results, *fac)
	}
	p.Count = len(p.Results)
	return p, nil
}

func (f *facturasFake) Obtener(_ context.Context, _ entity.Usuario, id int64) (*entity.Factura, error) {
	f.reg.anotar("facturas.obtener:%d", id)
	fac, ok := f.facturas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *fac
	return &c, nil
}

func (f *facturasFake) Crear(_ context.Context, _ entity.Usuario, d repository.DatosFactura, lineas []repository.NuevaLinea) (*entity.Factura, error) {
	f.reg.anotar("facturas.crear")
	if f.err != nil {
		return nil, f.err
	}
	f.creada = &d
	f.lineas = lineas
	fac := &entity.Factura{
		ID: 500, Estado: d.Estado, Fecha: d.Fecha, Cliente: d.Cliente,
		Descuento: d.Descuento, IVA: d.IVA, Recargo: d.Recargo, GastosEnvio: d.GastosEnvio,
		BaseIVA: d.BaseIVA, Total: d.Total,
	}
	for i, l := range lineas {
		fac.Lineas = append(fac.Lineas, entity.LineaFactura{
			ID: int64(600 + i), FacturaID: 500, Libro: entity.LibroLinea{ID: l.LibroID},
			Cantidad: l.Cantidad, Precio: l.Precio, Importe: l.Importe,
		})
	}
	f.facturas[500] = fac
	return fac, nil
}

func (f *facturasFake) Actualizar(_ context.Context, _ entity.Usuario, id int64, d repository.DatosFactura) (*entity.Factura, error) {
	f.reg.anotar("facturas.actualizar:%d", id)
	if f.err != nil {
		return nil, f.err
	}
	f.creada = &d
	fac := f.facturas[id]
	fac.Total = d.Total
	return fac, nil
}

func (f *facturasFake) CambiarEstado(_ context.Context, _ entity.Usuario, id int64, e entity.EstadoFactura, fp *time.Time) (*entity.Factura, error) {
	f.reg.anotar("facturas.estado:%d:%s", id, e)
	fac := f.facturas[id]
	fac.Estado = e
	fac.FechaPago = fp
	return fac, nil
}

func (f *facturasFake) Eliminar(_ context.Context, _ entity.Usuario, id int64) error {
	f.reg.anotar("facturas.eliminar:%d", id)
	delete(f.facturas, id)
	return nil
}

func (f *facturasFake) Emitir(_ context.Context, _ entity.Usuario, id int64) (*entity.Factura, error) {
	f.reg.anotar("facturas.emitir:%d", id)
	if f.err != nil {
		return nil, f.err
	}
	fac := f.facturas[id]
	fac.Estado = entity.EstadoEmitida
	fac.Numero = "F-2026-0001"
	return fac, nil
}

func (f *facturasFake) Anular(_ context.Context, _ entity.Usuario, id int64, motivo string) (*entity.Factura, error) {
	f.reg.anotar("facturas.anular:%d", id)
	fac := f.facturas[id]
	fac.Estado = entity.EstadoAnulada
	fac.MotivoAnulacion = motivo
	return fac, nil
}

func (f *facturasFake) DescargarPDF(_ context.Context, _ entity.Usuario, id int64, _ bool) ([]byte, error) {
	f.reg.anotar("facturas.pdf:%d", id)
	return []byte("%PDF"), nil
}

type lineasFake struct {
	reg       *registro
	porID     map[int64]entity.LineaFactura
	falla     string // prefijo de llamada que debe fallar
	siguiente int64
}

var _ repository.LineaFacturaRepository = (*lineasFake)(nil)

func (f *lineasFake) fallo(op string) error {
	if f.falla != "" && f.falla == op {
		return &apirest.RemoteError{Message: "Error remoto de prueba", Status: 500}
	}
	return nil
}

func (f *lineasFake) ListarPorFactura(_ context.Context, _ entity.Usuario, facturaID int64) ([]entity.LineaFactura, error) {
	f.reg.anotar("lineas.listar:%d", facturaID)
	var out []entity.LineaFactura
	for id := int64(0); id < 1000; id++ {
		if l, ok := f.porID[id]; ok && l.FacturaID == facturaID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *lineasFake) Obtener(_ context.Context, _ entity.Usuario, id int64) (*entity.LineaFactura, error) {
	f.reg.anotar("lineas.obtener:%d", id)
	l, ok := f.porID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (f *lineasFake) Crear(_ context.Context, _ entity.Usuario, n repository.NuevaLinea) (*entity.LineaFactura, error) {
	f.reg.anotar("lineas.crear:libro=%d", n.LibroID)
	if err := f.fallo("crear"); err != nil {
		return nil, err
	}
	f.siguiente++
	l := entity.LineaFactura{ID: 900 + f.siguiente, FacturaID: n.FacturaID, Libro: entity.LibroLinea{ID: n.LibroID},
		Cantidad: n.Cantidad, Precio: n.Precio, Importe: n.Importe}
	f.porID[l.ID] = l
	return &l, nil
}

func (f *lineasFake) Actualizar(_ context.Context, _ entity.Usuario, id int64, c repository.CambiosLinea) (*entity.LineaFactura, error) {
	f.reg.anotar("lineas.actualizar:%d", id)
	if err := f.fallo("actualizar"); err != nil {
		return nil, err
	}
	l := f.porID[id]
	l.Cantidad, l.Precio = c.Cantidad, c.Precio
	f.porID[id] = l
	return &l, nil
}

func (f *lineasFake) Eliminar(_ context.Context, _ entity.Usuario, id int64) error {
	f.reg.anotar("lineas.eliminar:%d", id)
	if err := f.fallo("eliminar"); err != nil {
		return err
	}
	delete(f.porID, id)
	return nil
}

type empresaFake struct {
	reg     *registro
	empresa *entity.Empresa
}

var _ repository.EmpresaRepository = (*empresaFake)(nil)

func (f *empresaFake) Obtener(_ context.Context, _ entity.Usuario) (*entity.Empresa, error) {
	f.reg.anotar("empresa.obtener")
	if f.empresa == nil {
		return nil, domain.ErrNotFound
	}
	c := *f.empresa
	return &c, nil
}

func (f *empresaFake) Crear(_ context.Context, _ entity.Usuario, d repository.DatosEmpresa) (*entity.Empresa, error) {
	f.reg.anotar("empresa.crear")
	f.empresa = &entity.Empresa{ID: 1, Nombre: d.Nombre, NIF: d.NIF, IBAN: d.IBAN}
	return f.empresa, nil
}

func (f *empresaFake) Actualizar(_ context.Context, _ entity.Usuario, id int64, d repository.DatosEmpresa) (*entity.Empresa, error) {
	f.reg.anotar("empresa.actualizar:%d", id)
	f.empresa.Nombre, f.empresa.NIF = d.Nombre, d.NIF
	return f.empresa, nil
}

func remoto(msg string) error {
	return &apirest.RemoteError{Message: msg, Status: 500}
}
