package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
)

// FiltroLibros filtros del listado de libros.
type FiltroLibros struct {
	Titulo   string
	Page     int
	PageSize int
}

// CambiosLibro actualización parcial; los campos nil no se envían.
type CambiosLibro struct {
	Titulo    *string
	PVP       *decimal.Decimal
	Precio    *decimal.Decimal
	Descuento *decimal.Decimal
	Cantidad  *int
}

// LibroRepository define el puerto de acceso remoto para Libro.
// La implementación vive en infrastructure; toda llamada exige un usuario autenticado.
type LibroRepository interface {
	Listar(ctx context.Context, u entity.Usuario, f FiltroLibros) (*Pagina[entity.Libro], error)
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.Libro, error)
	Crear(ctx context.Context, u entity.Usuario, libro *entity.Libro) (*entity.Libro, error)
	Actualizar(ctx context.Context, u entity.Usuario, id int64, cambios CambiosLibro) (*entity.Libro, error)
	Eliminar(ctx context.Context, u entity.Usuario, id int64) error
}
