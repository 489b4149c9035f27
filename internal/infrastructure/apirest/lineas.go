package apirest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

const pathLineas = "/facturacion/lineas-factura/"

// Lineas accesor remoto de líneas de factura.
type Lineas struct{ c *Client }

var _ repository.LineaFacturaRepository = (*Lineas)(nil)

// Lineas devuelve el accesor de líneas sobre este cliente.
func (c *Client) Lineas() *Lineas { return &Lineas{c: c} }

func pathLinea(id int64) string { return fmt.Sprintf("%s%d/", pathLineas, id) }

// ListarPorFactura la API devuelve un array plano, sin paginar.
func (r *Lineas) ListarPorFactura(ctx context.Context, u entity.Usuario, facturaID int64) ([]entity.LineaFactura, error) {
	var out []lineaJSON
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodGet, path: pathFactura(facturaID, "lineas"),
		msg: "Error al obtener las líneas de la factura",
	}, &out)
	if err != nil {
		return nil, err
	}
	lineas := make([]entity.LineaFactura, 0, len(out))
	for _, l := range out {
		lineas = append(lineas, l.entidad())
	}
	return lineas, nil
}

func (r *Lineas) Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.LineaFactura, error) {
	return r.linea(ctx, u, peticion{
		method: http.MethodGet, path: pathLinea(id),
		msg: "Error al obtener la línea de factura",
	})
}

func (r *Lineas) Crear(ctx context.Context, u entity.Usuario, linea repository.NuevaLinea) (*entity.LineaFactura, error) {
	return r.linea(ctx, u, peticion{
		method: http.MethodPost, path: pathLineas, body: nuevaLinea(linea),
		msg: "Error al crear la línea de factura",
	})
}

func (r *Lineas) Actualizar(ctx context.Context, u entity.Usuario, id int64, cambios repository.CambiosLinea) (*entity.LineaFactura, error) {
	return r.linea(ctx, u, peticion{
		method: http.MethodPatch, path: pathLinea(id),
		body: cambiosLineaJSON{
			Libro:     cambios.LibroID,
			Cantidad:  cambios.Cantidad,
			Precio:    cambios.Precio,
			Descuento: cambios.Descuento,
		},
		msg: "Error al actualizar la línea de factura",
	})
}

func (r *Lineas) Eliminar(ctx context.Context, u entity.Usuario, id int64) error {
	return r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodDelete, path: pathLinea(id),
		msg: "Error al eliminar la línea de factura",
	}, nil)
}

func (r *Lineas) linea(ctx context.Context, u entity.Usuario, p peticion) (*entity.LineaFactura, error) {
	var out lineaJSON
	if err := r.c.hacerJSON(ctx, u, p, &out); err != nil {
		return nil, err
	}
	l := out.entidad()
	return &l, nil
}
