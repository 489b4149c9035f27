package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/cache"
)

// EmpresaActions perfil único del emisor.
type EmpresaActions struct {
	repo  repository.EmpresaRepository
	cache cache.Store
	log   zerolog.Logger
	ttl   time.Duration
}

// NewEmpresaActions construye las acciones. store puede ser nil (sin caché).
func NewEmpresaActions(repo repository.EmpresaRepository, store cache.Store, log zerolog.Logger, ttl time.Duration) *EmpresaActions {
	return &EmpresaActions{repo: repo, cache: store, log: log.With().Str("recurso", "empresa").Logger(), ttl: ttl}
}

// Obtener devuelve el perfil o domain.ErrNotFound si aún no se ha creado.
func (a *EmpresaActions) Obtener(ctx context.Context, u entity.Usuario) (*dto.EmpresaResponse, error) {
	if !u.Autenticado() {
		return nil, domain.ErrUnauthorized
	}
	return cache.Leer(ctx, a.cache, a.log, "empresa", a.ttl, []string{cache.TagEmpresa},
		func(ctx context.Context) (*dto.EmpresaResponse, error) {
			e, err := a.repo.Obtener(ctx, u)
			if err != nil {
				return nil, err
			}
			r := toEmpresaResponse(e)
			return &r, nil
		})
}

// Guardar crea el perfil si no existe y, si existe, lo actualiza.
func (a *EmpresaActions) Guardar(ctx context.Context, u entity.Usuario, req dto.GuardarEmpresaRequest) dto.ActionResponse {
	const msg = "Error al guardar los datos de la empresa"
	datos := repository.DatosEmpresa{
		Nombre:    strings.TrimSpace(req.Nombre),
		Direccion: strings.TrimSpace(req.Direccion),
		NIF:       strings.TrimSpace(req.NIF),
		GIF:       strings.TrimSpace(req.GIF),
		IBAN:      strings.ReplaceAll(strings.TrimSpace(req.IBAN), " ", ""),
	}
	if datos.Nombre == "" || datos.NIF == "" {
		return fallo(a.log, "guardar", fmt.Errorf("%w: nombre y NIF son obligatorios", domain.ErrInvalidInput), msg)
	}

	actual, err := a.repo.Obtener(ctx, u)
	var e *entity.Empresa
	switch {
	case errors.Is(err, domain.ErrNotFound):
		e, err = a.repo.Crear(ctx, u, datos)
	case err != nil:
		return fallo(a.log, "guardar", err, msg)
	default:
		e, err = a.repo.Actualizar(ctx, u, actual.ID, datos)
	}
	if err != nil {
		return fallo(a.log, "guardar", err, msg)
	}
	cache.Invalidar(ctx, a.cache, a.log, cache.TagEmpresa)
	return dto.Ok(toEmpresaResponse(e))
}
