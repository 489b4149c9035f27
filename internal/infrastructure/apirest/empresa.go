package apirest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

const pathEmpresa = "/facturacion/empresa/"

// Empresa accesor remoto del perfil de empresa.
type Empresa struct{ c *Client }

var _ repository.EmpresaRepository = (*Empresa)(nil)

// Empresa devuelve el accesor de empresa sobre este cliente.
func (c *Client) Empresa() *Empresa { return &Empresa{c: c} }

// Obtener acepta un objeto, un array o una página; se queda con el primer registro.
func (r *Empresa) Obtener(ctx context.Context, u entity.Usuario) (*entity.Empresa, error) {
	var raw json.RawMessage
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodGet, path: pathEmpresa,
		msg: "Error al obtener los datos de la empresa",
	}, &raw)
	if err != nil {
		return nil, err
	}
	e, err := primeraEmpresa(raw)
	if err != nil {
		return nil, &RemoteError{Message: "Error al obtener los datos de la empresa", Err: err}
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func primeraEmpresa(raw json.RawMessage) (*entity.Empresa, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var lista []empresaJSON
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &lista); err != nil {
			return nil, err
		}
	case '{':
		var probe struct {
			Results *[]empresaJSON `json:"results"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}
		if probe.Results != nil {
			lista = *probe.Results
			break
		}
		var e empresaJSON
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		lista = []empresaJSON{e}
	default:
		return nil, fmt.Errorf("respuesta de empresa inesperada")
	}
	if len(lista) == 0 {
		return nil, nil
	}
	e := lista[0].entidad()
	return &e, nil
}

func (r *Empresa) Crear(ctx context.Context, u entity.Usuario, datos repository.DatosEmpresa) (*entity.Empresa, error) {
	return r.empresa(ctx, u, peticion{
		method: http.MethodPost, path: pathEmpresa, body: datosEmpresa(datos),
		msg: "Error al crear los datos de la empresa",
	})
}

func (r *Empresa) Actualizar(ctx context.Context, u entity.Usuario, id int64, datos repository.DatosEmpresa) (*entity.Empresa, error) {
	return r.empresa(ctx, u, peticion{
		method: http.MethodPut, path: fmt.Sprintf("%s%d/", pathEmpresa, id), body: datosEmpresa(datos),
		msg: "Error al actualizar los datos de la empresa",
	})
}

func (r *Empresa) empresa(ctx context.Context, u entity.Usuario, p peticion) (*entity.Empresa, error) {
	var out empresaJSON
	if err := r.c.hacerJSON(ctx, u, p, &out); err != nil {
		return nil, err
	}
	e := out.entidad()
	return &e, nil
}
