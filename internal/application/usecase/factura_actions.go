package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/application/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	calculo "github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/cache"
)

// Etiquetas afectadas por cualquier cambio en una factura o sus líneas.
// Libros se incluye porque la API ajusta el stock al guardar, anular o eliminar.
var tagsFactura = []string{cache.TagFacturas, cache.TagFactura, cache.TagLineasFactura, cache.TagLineaFactura, cache.TagLibros}

// FacturaActions lecturas y mutaciones de facturas.
type FacturaActions struct {
	facturas repository.FacturaRepository
	lineas   repository.LineaFacturaRepository
	catalogo facturacion.CatalogoLibros
	cache    cache.Store
	log      zerolog.Logger
	ttl      time.Duration
	now      func() time.Time
}

// NewFacturaActions construye las acciones. store puede ser nil (sin caché).
func NewFacturaActions(
	facturas repository.FacturaRepository,
	lineas repository.LineaFacturaRepository,
	catalogo facturacion.CatalogoLibros,
	store cache.Store,
	log zerolog.Logger,
	ttl time.Duration,
) *FacturaActions {
	return &FacturaActions{
		facturas: facturas,
		lineas:   lineas,
		catalogo: catalogo,
		cache:    store,
		log:      log.With().Str("recurso", "facturas").Logger(),
		ttl:      ttl,
		now:      time.Now,
	}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// Listar devuelve una página de facturas filtrada. Se revalida cada 60 s.
func (a *FacturaActions) Listar(ctx context.Context, u entity.Usuario, req dto.FacturaListRequest) (*dto.PageResponse[dto.FacturaResponse], error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	req.DefaultPage()
	filtro := repository.FiltroFacturas{
		Numero:   req.Numero,
		Cliente:  req.Cliente,
		Nombre:   req.Nombre,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Estado != "" {
		e := entity.EstadoFactura(req.Estado)
		if !e.Valido() {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, req.Estado)
		}
		filtro.Estado = e
	}
	var err error
	if filtro.FechaDesde, err = fechaOpcional(req.FechaDesde); err != nil {
		return nil, err
	}
	if filtro.FechaHasta, err = fechaOpcional(req.FechaHasta); err != nil {
		return nil, err
	}

	key := cache.Clave("facturas", req.Page, req.PageSize, req.Numero, req.Cliente, req.Nombre, req.Estado, req.FechaDesde, req.FechaHasta)
	return cache.Leer(ctx, a.cache, a.log, key, cache.TTLFacturas, []string{cache.TagFacturas},
		func(ctx context.Context) (*dto.PageResponse[dto.FacturaResponse], error) {
			p, err := a.facturas.Listar(ctx, u, filtro)
			if err != nil {
				return nil, err
			}
			return toPageResponse(p, req.PageRequest, toFacturaResponse), nil
		})
}

// Obtener devuelve la factura con sus líneas y el desglose calculado.
func (a *FacturaActions) Obtener(ctx context.Context, u entity.Usuario, id int64) (*dto.FacturaResponse, error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	return cache.Leer(ctx, a.cache, a.log, cache.Clave("factura", id), a.ttl, []string{cache.TagFactura},
		func(ctx context.Context) (*dto.FacturaResponse, error) {
			f, err := a.cargar(ctx, u, id)
			if err != nil {
				return nil, err
			}
			r := toFacturaResponse(f)
			return &r, nil
		})
}

// Lineas devuelve las líneas de la factura.
func (a *FacturaActions) Lineas(ctx context.Context, u entity.Usuario, id int64) ([]dto.LineaFacturaResponse, error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	return cache.Leer(ctx, a.cache, a.log, cache.Clave("lineas-factura", id), a.ttl, []string{cache.TagLineasFactura},
		func(ctx context.Context) ([]dto.LineaFacturaResponse, error) {
			ls, err := a.lineas.ListarPorFactura(ctx, u, id)
			if err != nil {
				return nil, err
			}
			return toLineasResponse(ls), nil
		})
}

// Calcular desglose redondeado para previsualizar un formulario. No toca la red.
func (a *FacturaActions) Calcular(req dto.CalcularTotalesRequest) calculo.Totales {
	return calculo.CalcularTotales(req.Importes, req.Parametros()).Redondeados()
}

// DescargarPDF devuelve el PDF que genera la API remota.
func (a *FacturaActions) DescargarPDF(ctx context.Context, u entity.Usuario, id int64, mostrarIban bool) ([]byte, error) {
	return a.facturas.DescargarPDF(ctx, u, id, mostrarIban)
}

// cargar lee la factura sin caché; si la respuesta no trae líneas las pide aparte.
func (a *FacturaActions) cargar(ctx context.Context, u entity.Usuario, id int64) (*entity.Factura, error) {
	f, err := a.facturas.Obtener(ctx, u, id)
	if err != nil {
		return nil, err
	}
	if len(f.Lineas) == 0 {
		ls, err := a.lineas.ListarPorFactura(ctx, u, id)
		if err != nil {
			return nil, err
		}
		f.Lineas = ls
	}
	return f, nil
}

// ── Creación y edición ────────────────────────────────────────────────────────

// Crear da de alta un borrador con sus líneas. Los totales se calculan aquí con la
// calculadora compartida y se envían redondeados a 2 decimales.
func (a *FacturaActions) Crear(ctx context.Context, u entity.Usuario, req dto.GuardarFacturaRequest) dto.ActionResponse {
	const msg = "Error al crear la factura"
	if len(req.Lineas) == 0 {
		return fallo(a.log, "crear", domain.ErrFacturaSinLineas, msg)
	}
	fecha, err := parseFecha(req.Fecha, a.now)
	if err != nil {
		return fallo(a.log, "crear", err, msg)
	}

	ed := facturacion.NewEditor(a.catalogo)
	for _, l := range req.Lineas {
		if err := a.agregar(ctx, u, ed, l); err != nil {
			return fallo(a.log, "crear", err, msg)
		}
	}
	if err := ed.RevalidarStock(ctx, u); err != nil {
		return fallo(a.log, "crear", err, msg)
	}

	datos := datosFactura(req.CabeceraFacturaRequest, fecha, ed.Totales(req.Parametros()).Redondeados())
	datos.Estado = entity.EstadoBorrador

	f, err := a.facturas.Crear(ctx, u, datos, ed.NuevasLineas(0))
	if err != nil {
		return fallo(a.log, "crear", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)
	a.log.Info().Int64("factura_id", f.ID).Int("lineas", len(req.Lineas)).Msg("factura creada")
	return dto.Ok(toFacturaResponse(f))
}

// Actualizar guarda la cabecera y después, en secuencia, borra, actualiza y crea
// líneas. Se detiene en el primer fallo sin deshacer lo ya aplicado.
func (a *FacturaActions) Actualizar(ctx context.Context, u entity.Usuario, id int64, req dto.GuardarFacturaRequest) dto.ActionResponse {
	const msg = "Error al actualizar la factura"
	if len(req.Lineas) == 0 {
		return fallo(a.log, "actualizar", domain.ErrFacturaSinLineas, msg)
	}
	fecha, err := parseFecha(req.Fecha, a.now)
	if err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}

	actual, err := a.cargar(ctx, u, id)
	if err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}
	if !calculo.Editable(actual) {
		err := fmt.Errorf("%w: solo se editan borradores (estado %s)", domain.ErrTransicionInvalida, actual.Estado)
		return fallo(a.log, "actualizar", err, msg)
	}

	ed := facturacion.NewEditor(a.catalogo)
	ed.CargarExistentes(actual.Lineas)
	if err := a.aplicarCambios(ctx, u, ed, req.Lineas); err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}
	if err := ed.RevalidarStock(ctx, u); err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}

	datos := datosFactura(req.CabeceraFacturaRequest, fecha, ed.Totales(req.Parametros()).Redondeados())
	datos.Estado = actual.Estado

	// 1) cabecera
	if _, err := a.facturas.Actualizar(ctx, u, id, datos); err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}
	// A partir de aquí cualquier fallo deja la factura a medias: invalidar siempre.
	defer cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)

	// 2) líneas eliminadas
	for _, lineaID := range ed.Eliminadas() {
		if err := a.lineas.Eliminar(ctx, u, lineaID); err != nil {
			return fallo(a.log, "actualizar.eliminar_linea", err, msg)
		}
	}
	// 3) líneas existentes
	for _, l := range ed.LineasExistentes() {
		_, err := a.lineas.Actualizar(ctx, u, l.ID, repository.CambiosLinea{
			LibroID:   l.Libro.ID,
			Cantidad:  l.Cantidad,
			Precio:    l.Precio,
			Descuento: l.Descuento,
		})
		if err != nil {
			return fallo(a.log, "actualizar.linea", err, msg)
		}
	}
	// 4) líneas nuevas
	for _, n := range ed.NuevasLineas(id) {
		if _, err := a.lineas.Crear(ctx, u, n); err != nil {
			return fallo(a.log, "actualizar.crear_linea", err, msg)
		}
	}

	f, err := a.cargar(ctx, u, id)
	if err != nil {
		// Los cambios ya están aplicados; solo falla la relectura.
		a.log.Warn().Err(err).Int64("factura_id", id).Msg("relectura tras actualizar")
		return dto.Ok(nil)
	}
	return dto.Ok(toFacturaResponse(f))
}

// agregar lee el libro y añade la línea con su precio o el indicado.
func (a *FacturaActions) agregar(ctx context.Context, u entity.Usuario, ed *facturacion.Editor, l dto.LineaRequest) error {
	if l.LibroID <= 0 {
		return fmt.Errorf("%w: línea sin libro", domain.ErrInvalidInput)
	}
	libro, err := a.catalogo.Obtener(ctx, u, l.LibroID)
	if err != nil {
		return err
	}
	if _, err := ed.Agregar(*libro, l.Cantidad); err != nil {
		return err
	}
	i := len(ed.Lineas()) - 1
	if l.Precio != nil {
		if err := ed.CambiarPrecio(i, *l.Precio); err != nil {
			return err
		}
	}
	return ed.CambiarDescuento(i, l.Descuento)
}

// aplicarCambios lleva el editor, cargado con las líneas guardadas, al estado pedido.
func (a *FacturaActions) aplicarCambios(ctx context.Context, u entity.Usuario, ed *facturacion.Editor, pedidas []dto.LineaRequest) error {
	conservar := map[int64]bool{}
	for _, l := range pedidas {
		if l.ID != nil {
			if ed.Indice(*l.ID) < 0 {
				return fmt.Errorf("%w: la línea %d no pertenece a la factura", domain.ErrInvalidInput, *l.ID)
			}
			conservar[*l.ID] = true
		}
	}
	for _, l := range ed.LineasExistentes() {
		if !conservar[l.ID] {
			if err := ed.Quitar(ed.Indice(l.ID)); err != nil {
				return err
			}
		}
	}
	for _, l := range pedidas {
		if l.ID == nil {
			if err := a.agregar(ctx, u, ed, l); err != nil {
				return err
			}
			continue
		}
		i := ed.Indice(*l.ID)
		if err := ed.CambiarCantidad(i, l.Cantidad); err != nil {
			return err
		}
		if l.Precio != nil {
			if err := ed.CambiarPrecio(i, *l.Precio); err != nil {
				return err
			}
		}
		if err := ed.CambiarDescuento(i, l.Descuento); err != nil {
			return err
		}
	}
	return nil
}

func datosFactura(c dto.CabeceraFacturaRequest, fecha time.Time, tot calculo.Totales) repository.DatosFactura {
	return repository.DatosFactura{
		Fecha:       fecha,
		Cliente:     strings.TrimSpace(c.Cliente),
		Nombre:      strings.TrimSpace(c.Nombre),
		NIF:         strings.TrimSpace(c.NIF),
		Domicilio:   c.Domicilio,
		CPCiudad:    c.CPCiudad,
		Telefono:    c.Telefono,
		Notas:       c.Notas,
		Descuento:   c.Descuento,
		IVA:         c.IVA,
		Recargo:     c.Recargo,
		GastosEnvio: c.GastosEnvio,
		BaseIVA:     tot.BaseIVA,
		Total:       tot.Total,
	}
}

// ── Transiciones ──────────────────────────────────────────────────────────────

// Eliminar borra un borrador. Una factura emitida se rechaza sin llamar a la API.
func (a *FacturaActions) Eliminar(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse {
	const msg = "Error al eliminar la factura"
	f, err := a.facturas.Obtener(ctx, u, id)
	if err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	if err := calculo.PuedeEliminar(f); err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	if err := a.facturas.Eliminar(ctx, u, id); err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)
	return dto.Ok(nil)
}

// Emitir asigna número oficial a un borrador con líneas.
func (a *FacturaActions) Emitir(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse {
	const msg = "Error al emitir la factura"
	f, err := a.cargar(ctx, u, id)
	if err != nil {
		return fallo(a.log, "emitir", err, msg)
	}
	if err := calculo.PuedeEmitir(f); err != nil {
		return fallo(a.log, "emitir", err, msg)
	}
	emitida, err := a.facturas.Emitir(ctx, u, id)
	if err != nil {
		return fallo(a.log, "emitir", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, cache.TagFacturas, cache.TagFactura)
	a.log.Info().Int64("factura_id", id).Str("numero", emitida.Numero).Msg("factura emitida")
	return dto.Ok(toFacturaResponse(emitida))
}

// Anular una factura emitida. El motivo vacío se rechaza antes de cualquier llamada.
func (a *FacturaActions) Anular(ctx context.Context, u entity.Usuario, id int64, motivo string) dto.ActionResponse {
	const msg = "Error al anular la factura"
	if err := calculo.ValidarMotivo(motivo); err != nil {
		return fallo(a.log, "anular", err, msg)
	}
	f, err := a.facturas.Obtener(ctx, u, id)
	if err != nil {
		return fallo(a.log, "anular", err, msg)
	}
	if err := calculo.PuedeAnular(f, motivo); err != nil {
		return fallo(a.log, "anular", err, msg)
	}
	anulada, err := a.facturas.Anular(ctx, u, id, strings.TrimSpace(motivo))
	if err != nil {
		return fallo(a.log, "anular", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)
	a.log.Info().Int64("factura_id", id).Msg("factura anulada")
	return dto.Ok(toFacturaResponse(anulada))
}

// MarcarPagada registra el cobro de una factura emitida. fechaPago vacía = hoy.
func (a *FacturaActions) MarcarPagada(ctx context.Context, u entity.Usuario, id int64, fechaPago string) dto.ActionResponse {
	const msg = "Error al cambiar el estado de la factura"
	fecha, err := parseFecha(fechaPago, a.now)
	if err != nil {
		return fallo(a.log, "pagar", err, msg)
	}
	f, err := a.facturas.Obtener(ctx, u, id)
	if err != nil {
		return fallo(a.log, "pagar", err, msg)
	}
	if err := calculo.PuedeMarcarPagada(f, fecha); err != nil {
		return fallo(a.log, "pagar", err, msg)
	}
	pagada, err := a.facturas.CambiarEstado(ctx, u, id, entity.EstadoPagada, &fecha)
	if err != nil {
		return fallo(a.log, "pagar", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, cache.TagFacturas, cache.TagFactura)
	return dto.Ok(toFacturaResponse(pagada))
}
