package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/application/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/cache"
)

// LibroActions lecturas cacheadas y mutaciones del inventario de libros.
type LibroActions struct {
	repo  repository.LibroRepository
	cache cache.Store
	log   zerolog.Logger
	ttl   time.Duration
}

// NewLibroActions construye las acciones. store puede ser nil (sin caché).
func NewLibroActions(repo repository.LibroRepository, store cache.Store, log zerolog.Logger, ttl time.Duration) *LibroActions {
	return &LibroActions{repo: repo, cache: store, log: log.With().Str("recurso", "libros").Logger(), ttl: ttl}
}

// Listar devuelve una página de libros, opcionalmente filtrada por título.
func (a *LibroActions) Listar(ctx context.Context, u entity.Usuario, req dto.LibroListRequest) (*dto.PageResponse[dto.LibroResponse], error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	req.DefaultPage()
	key := cache.Clave("libros", req.Page, req.PageSize, req.Titulo)
	return cache.Leer(ctx, a.cache, a.log, key, a.ttl, []string{cache.TagLibros},
		func(ctx context.Context) (*dto.PageResponse[dto.LibroResponse], error) {
			p, err := a.repo.Listar(ctx, u, repository.FiltroLibros{Titulo: req.Titulo, Page: req.Page, PageSize: req.PageSize})
			if err != nil {
				return nil, err
			}
			return toPageResponse(p, req.PageRequest, toLibroResponse), nil
		})
}

// Buscar candidatos para el selector de líneas, ordenados por relevancia sin tildes.
func (a *LibroActions) Buscar(ctx context.Context, u entity.Usuario, texto string) ([]dto.LibroResponse, error) {
	ed := facturacion.NewEditor(facturacion.CatalogoRemoto{Libros: a.repo})
	libros, err := ed.Buscar(ctx, u, texto)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LibroResponse, 0, len(libros))
	for i := range libros {
		out = append(out, toLibroResponse(&libros[i]))
	}
	return out, nil
}

// Obtener un libro por id.
func (a *LibroActions) Obtener(ctx context.Context, u entity.Usuario, id int64) (*dto.LibroResponse, error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	return cache.Leer(ctx, a.cache, a.log, cache.Clave("libro", id), a.ttl, []string{cache.TagLibros},
		func(ctx context.Context) (*dto.LibroResponse, error) {
			l, err := a.repo.Obtener(ctx, u, id)
			if err != nil {
				return nil, err
			}
			r := toLibroResponse(l)
			return &r, nil
		})
}

func (a *LibroActions) Crear(ctx context.Context, u entity.Usuario, req dto.CrearLibroRequest) dto.ActionResponse {
	libro := &entity.Libro{
		Titulo:    req.Titulo,
		PVP:       req.PVP,
		Precio:    req.Precio,
		Descuento: req.Descuento,
		Cantidad:  req.Cantidad,
	}
	if err := libro.Validar(); err != nil {
		return fallo(a.log, "crear", fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error()), "Error al crear el libro")
	}
	creado, err := a.repo.Crear(ctx, u, libro)
	if err != nil {
		return fallo(a.log, "crear", err, "Error al crear el libro")
	}
	cache.Invalidar(ctx, a.cache, a.log, cache.TagLibros)
	return dto.Ok(toLibroResponse(creado))
}

func (a *LibroActions) Actualizar(ctx context.Context, u entity.Usuario, id int64, req dto.ActualizarLibroRequest) dto.ActionResponse {
	if req.Cantidad != nil && *req.Cantidad < 0 {
		return fallo(a.log, "actualizar", fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput), "Error al actualizar el libro")
	}
	if req.Titulo != nil && *req.Titulo == "" {
		return fallo(a.log, "actualizar", fmt.Errorf("%w: titulo requerido", domain.ErrInvalidInput), "Error al actualizar el libro")
	}
	l, err := a.repo.Actualizar(ctx, u, id, repository.CambiosLibro{
		Titulo:    req.Titulo,
		PVP:       req.PVP,
		Precio:    req.Precio,
		Descuento: req.Descuento,
		Cantidad:  req.Cantidad,
	})
	if err != nil {
		return fallo(a.log, "actualizar", err, "Error al actualizar el libro")
	}
	cache.Invalidar(ctx, a.cache, a.log, cache.TagLibros)
	return dto.Ok(toLibroResponse(l))
}

func (a *LibroActions) Eliminar(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse {
	if err := a.repo.Eliminar(ctx, u, id); err != nil {
		return fallo(a.log, "eliminar", err, "Error al eliminar el libro")
	}
	cache.Invalidar(ctx, a.cache, a.log, cache.TagLibros)
	return dto.Ok(nil)
}

// Importar actualiza el libro con el mismo título, sin distinguir tildes ni mayúsculas,
// o lo crea si no existe. creado indica cuál de las dos cosas ha hecho.
func (a *LibroActions) Importar(ctx context.Context, u entity.Usuario, req dto.ImportarLibroRequest) (res dto.ActionResponse, creado bool) {
	titulo := strings.TrimSpace(req.Titulo)
	if titulo == "" {
		return fallo(a.log, "importar", fmt.Errorf("%w: titulo requerido", domain.ErrInvalidInput), "Error al importar el libro"), false
	}
	existente, err := a.porTitulo(ctx, u, titulo)
	if err != nil {
		return fallo(a.log, "importar", err, "Error al importar el libro"), false
	}
	if existente == nil {
		res := a.Crear(ctx, u, dto.CrearLibroRequest{
			Titulo:    titulo,
			PVP:       valorOCero(req.PVP),
			Precio:    valorOCero(req.Precio),
			Descuento: valorOCero(req.Descuento),
			Cantidad:  req.Cantidad,
		})
		return res, res.Success
	}
	cantidad := req.Cantidad
	return a.Actualizar(ctx, u, existente.ID, dto.ActualizarLibroRequest{
		PVP:       req.PVP,
		Precio:    req.Precio,
		Descuento: req.Descuento,
		Cantidad:  &cantidad,
	}), false
}

// porTitulo busca en la API y se queda con la coincidencia exacta normalizada.
func (a *LibroActions) porTitulo(ctx context.Context, u entity.Usuario, titulo string) (*entity.Libro, error) {
	p, err := a.repo.Listar(ctx, u, repository.FiltroLibros{Titulo: titulo, Page: 1, PageSize: facturacion.TamanoBusqueda})
	if err != nil {
		return nil, err
	}
	q := facturacion.Normalizar(titulo)
	for i := range p.Results {
		if facturacion.Normalizar(strings.TrimSpace(p.Results[i].Titulo)) == q {
			return &p.Results[i], nil
		}
	}
	return nil, nil
}

func valorOCero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
