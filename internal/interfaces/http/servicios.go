package http

import (
	"context"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
)

// Contratos que consumen los handlers; los implementan las acciones de usecase.

type LibroService interface {
	Listar(ctx context.Context, u entity.Usuario, req dto.LibroListRequest) (*dto.PageResponse[dto.LibroResponse], error)
	Buscar(ctx context.Context, u entity.Usuario, texto string) ([]dto.LibroResponse, error)
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*dto.LibroResponse, error)
	Crear(ctx context.Context, u entity.Usuario, req dto.CrearLibroRequest) dto.ActionResponse
	Actualizar(ctx context.Context, u entity.Usuario, id int64, req dto.ActualizarLibroRequest) dto.ActionResponse
	Eliminar(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse
}

type FacturaService interface {
	Listar(ctx context.Context, u entity.Usuario, req dto.FacturaListRequest) (*dto.PageResponse[dto.FacturaResponse], error)
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*dto.FacturaResponse, error)
	Lineas(ctx context.Context, u entity.Usuario, id int64) ([]dto.LineaFacturaResponse, error)
	Calcular(req dto.CalcularTotalesRequest) facturacion.Totales
	DescargarPDF(ctx context.Context, u entity.Usuario, id int64, mostrarIban bool) ([]byte, error)
	Crear(ctx context.Context, u entity.Usuario, req dto.GuardarFacturaRequest) dto.ActionResponse
	Actualizar(ctx context.Context, u entity.Usuario, id int64, req dto.GuardarFacturaRequest) dto.ActionResponse
	Eliminar(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse
	Emitir(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse
	Anular(ctx context.Context, u entity.Usuario, id int64, motivo string) dto.ActionResponse
	MarcarPagada(ctx context.Context, u entity.Usuario, id int64, fechaPago string) dto.ActionResponse
}

type LineaService interface {
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*dto.LineaFacturaResponse, error)
	Crear(ctx context.Context, u entity.Usuario, req dto.CrearLineaRequest) dto.ActionResponse
	Actualizar(ctx context.Context, u entity.Usuario, id int64, req dto.ActualizarLineaRequest) dto.ActionResponse
	Eliminar(ctx context.Context, u entity.Usuario, id int64) dto.ActionResponse
}

type EmpresaService interface {
	Obtener(ctx context.Context, u entity.Usuario) (*dto.EmpresaResponse, error)
	Guardar(ctx context.Context, u entity.Usuario, req dto.GuardarEmpresaRequest) dto.ActionResponse
}
