package repository

import (
	"context"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
)

// DatosEmpresa campos editables del perfil del emisor.
type DatosEmpresa struct {
	Nombre    string
	Direccion string
	NIF       string
	GIF       string
	IBAN      string
}

// EmpresaRepository puerto para el perfil único de la empresa.
// Obtener devuelve domain.ErrNotFound si todavía no se ha creado.
type EmpresaRepository interface {
	Obtener(ctx context.Context, u entity.Usuario) (*entity.Empresa, error)
	Crear(ctx context.Context, u entity.Usuario, datos DatosEmpresa) (*entity.Empresa, error)
	Actualizar(ctx context.Context, u entity.Usuario, id int64, datos DatosEmpresa) (*entity.Empresa, error)
}
