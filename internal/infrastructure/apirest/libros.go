package apirest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

const pathLibros = "/inventario/libros/"

// Libros accesor remoto del inventario de libros.
type Libros struct{ c *Client }

var _ repository.LibroRepository = (*Libros)(nil)

// Libros devuelve el accesor de libros sobre este cliente.
func (c *Client) Libros() *Libros { return &Libros{c: c} }

func pathLibro(id int64) string { return fmt.Sprintf("%s%d/", pathLibros, id) }

func (r *Libros) Listar(ctx context.Context, u entity.Usuario, f repository.FiltroLibros) (*repository.Pagina[entity.Libro], error) {
	q := paginacion(f.Page, f.PageSize)
	if f.Titulo != "" {
		q.Set("titulo", f.Titulo)
	}
	var out paginaJSON[libroJSON]
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodGet, path: pathLibros, query: q,
		msg: "Error al obtener los libros",
	}, &out)
	if err != nil {
		return nil, err
	}
	return convertirPagina(out, libroJSON.entidad), nil
}

func (r *Libros) Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.Libro, error) {
	var out libroJSON
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodGet, path: pathLibro(id),
		msg: "Error al obtener el libro",
	}, &out)
	if err != nil {
		return nil, err
	}
	l := out.entidad()
	return &l, nil
}

func (r *Libros) Crear(ctx context.Context, u entity.Usuario, libro *entity.Libro) (*entity.Libro, error) {
	var out libroJSON
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodPost, path: pathLibros, body: libroDesdeEntidad(libro),
		msg: "Error al crear el libro",
	}, &out)
	if err != nil {
		return nil, err
	}
	l := out.entidad()
	return &l, nil
}

func (r *Libros) Actualizar(ctx context.Context, u entity.Usuario, id int64, cambios repository.CambiosLibro) (*entity.Libro, error) {
	var out libroJSON
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodPatch, path: pathLibro(id),
		body: cambiosLibroJSON{
			Titulo:    cambios.Titulo,
			PVP:       cambios.PVP,
			Precio:    cambios.Precio,
			Descuento: cambios.Descuento,
			Cantidad:  cambios.Cantidad,
		},
		msg: "Error al actualizar el libro",
	}, &out)
	if err != nil {
		return nil, err
	}
	l := out.entidad()
	return &l, nil
}

func (r *Libros) Eliminar(ctx context.Context, u entity.Usuario, id int64) error {
	return r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodDelete, path: pathLibro(id),
		msg: "Error al eliminar el libro",
	}, nil)
}
