package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/cache"
)

// LineaActions mutaciones sueltas sobre líneas de factura. Solo se admiten sobre
// facturas en borrador.
type LineaActions struct {
	lineas   repository.LineaFacturaRepository
	facturas repository.FacturaRepository
	libros   repository.LibroRepository
	cache    cache.Store
	log      zerolog.Logger
}

// NewLineaActions construye las acciones. store puede ser nil (sin caché).
func NewLineaActions(lineas repository.LineaFacturaRepository, facturas repository.FacturaRepository, libros repository.LibroRepository, store cache.Store, log zerolog.Logger) *LineaActions {
	return &LineaActions{
		lineas:   lineas,
		facturas: facturas,
		libros:   libros,
		cache:    store,
		log:      log.With().Str("recurso", "lineas-factura").Logger(),
	}
}

// Obtener una línea por id (revalidación cada 300 s).
func (a *LineaActions) Obtener(ctx context.Context, u entity.Usuario, id int64) (*dto.LineaFacturaResponse, error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	return cache.Leer(ctx, a.cache, a.log, cache.Clave("linea-factura", id), cache.TTLLineaFactura, []string{cache.TagLineaFactura},
		func(ctx context.Context) (*dto.LineaFacturaResponse, error) {
			l, err := a.lineas.Obtener(ctx, u, id)
			if err != nil {
				return nil, err
			}
			r := toLineaResponse(l)
			return &r, nil
		})
}

// Crear añade una línea a un borrador comprobando el stock actual del libro.
func (a *LineaActions) Crear(ctx context.Context, u entity.Usuario, req dto.CrearLineaRequest) dto.ActionResponse {
	const msg = "Error al crear la línea de factura"
	if req.FacturaID <= 0 || req.LibroID <= 0 || req.Cantidad <= 0 {
		return fallo(a.log, "crear", fmt.Errorf("%w: factura, libro y cantidad son obligatorios", domain.ErrInvalidInput), msg)
	}
	if err := a.borrador(ctx, u, req.FacturaID); err != nil {
		return fallo(a.log, "crear", err, msg)
	}
	libro, err := a.libros.Obtener(ctx, u, req.LibroID)
	if err != nil {
		return fallo(a.log, "crear", err, msg)
	}
	if !libro.HayStock(req.Cantidad) {
		return fallo(a.log, "crear", errStock(libro.Titulo, libro.Cantidad), msg)
	}
	precio := libro.Precio
	if req.Precio != nil {
		precio = *req.Precio
	}
	l, err := a.lineas.Crear(ctx, u, repository.NuevaLinea{
		FacturaID: req.FacturaID,
		LibroID:   req.LibroID,
		Titulo:    libro.Titulo,
		Cantidad:  req.Cantidad,
		Precio:    precio,
		Descuento: req.Descuento,
		Importe:   facturacion.ImporteLinea(precio, req.Cantidad).Round(2),
	})
	if err != nil {
		return fallo(a.log, "crear", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)
	return dto.Ok(toLineaResponse(l))
}

// Actualizar cambia cantidad, precio o libro de una línea de un borrador. La cantidad
// se valida contra el stock del libro más las unidades que la línea ya reserva.
func (a *LineaActions) Actualizar(ctx context.Context, u entity.Usuario, id int64, req dto.ActualizarLineaRequest) dto.ActionResponse {
	const msg = "Error al actualizar la línea de factura"
	if req.Cantidad <= 0 {
		return fallo(a.log, "actualizar", fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput), msg)
	}
	actual, err := a.lineas.Obtener(ctx, u, id)
	if err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}
	if req.FacturaID != 0 && req.FacturaID != actual.FacturaID {
		return fallo(a.log, "actualizar", fmt.Errorf("%w: una línea no puede cambiar de factura", domain.ErrInvalidInput), msg)
	}
	if err := a.borrador(ctx, u, actual.FacturaID); err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}

	libroID := actual.Libro.ID
	if req.LibroID != 0 {
		libroID = req.LibroID
	}
	libro, err := a.libros.Obtener(ctx, u, libroID)
	if err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}
	disponible := libro.Cantidad
	if libroID == actual.Libro.ID {
		disponible += actual.Cantidad
	}
	if req.Cantidad > disponible {
		return fallo(a.log, "actualizar", errStock(libro.Titulo, disponible), msg)
	}

	precio := actual.Precio
	if req.Precio != nil {
		precio = *req.Precio
	}
	l, err := a.lineas.Actualizar(ctx, u, id, repository.CambiosLinea{
		LibroID:   libroID,
		Cantidad:  req.Cantidad,
		Precio:    precio,
		Descuento: req.Descuento,
	})
	if err != nil {
		return fallo(a.log, "actualizar", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)
	return dto.Ok(toLineaResponse(l))
}

// Eliminar quita una línea de un borrador. La última línea no se elimina: un borrador
// guardado conserva al menos una.
func (a *LineaActions) Eliminar(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse {
	const msg = "Error al eliminar la línea de factura"
	actual, err := a.lineas.Obtener(ctx, u, id)
	if err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	if err := a.borrador(ctx, u, actual.FacturaID); err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	hermanas, err := a.lineas.ListarPorFactura(ctx, u, actual.FacturaID)
	if err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	if len(hermanas) <= 1 {
		return fallo(a.log, "eliminar", domain.ErrFacturaSinLineas, msg)
	}
	if err := a.lineas.Eliminar(ctx, u, id); err != nil {
		return fallo(a.log, "eliminar", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, tagsFactura...)
	return dto.Ok(nil)
}

// borrador carga la factura y exige que siga admitiendo cambios.
func (a *LineaActions) borrador(ctx context.Context, u entity.Usuario, facturaID int64) error {
	f, err := a.facturas.Obtener(ctx, u, facturaID)
	if err != nil {
		return err
	}
	if !facturacion.Editable(f) {
		return fmt.Errorf("%w: solo se editan líneas de borradores (estado %s)", domain.ErrTransicionInvalida, f.Estado)
	}
	return nil
}

func errStock(titulo string, disponible int) error {
	return fmt.Errorf("%w: «%s», disponible %d", domain.ErrInsufficientStock, titulo, disponible)
}
