package facturacion

import (
	"context"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

// TamanoBusqueda número máximo de candidatos que devuelve una búsqueda.
const TamanoBusqueda = 20

// CatalogoRemoto adapta el repositorio de libros a CatalogoLibros.
type CatalogoRemoto struct {
	Libros repository.LibroRepository
}

func (c CatalogoRemoto) BuscarPorTitulo(ctx context.Context, u entity.Usuario, titulo string) ([]entity.Libro, error) {
	pag, err := c.Libros.Listar(ctx, u, repository.FiltroLibros{Titulo: titulo, Page: 1, PageSize: TamanoBusqueda})
	if err != nil {
		return nil, err
	}
	return pag.Results, nil
}

func (c CatalogoRemoto) Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.Libro, error) {
	return c.Libros.Obtener(ctx, u, id)
}
