package apirest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

const pathFacturas = "/facturacion/facturas/"

// Facturas accesor remoto de facturas.
type Facturas struct{ c *Client }

var _ repository.FacturaRepository = (*Facturas)(nil)

// Facturas devuelve el accesor de facturas sobre este cliente.
func (c *Client) Facturas() *Facturas { return &Facturas{c: c} }

func pathFactura(id int64, accion string) string {
	if accion == "" {
		return fmt.Sprintf("%s%d/", pathFacturas, id)
	}
	return fmt.Sprintf("%s%d/%s/", pathFacturas, id, accion)
}

func filtrosFacturas(f repository.FiltroFacturas) url.Values {
	q := paginacion(f.Page, f.PageSize)
	if f.Numero != "" {
		q.Set("numero", f.Numero)
	}
	if f.Cliente != "" {
		q.Set("cliente", f.Cliente)
	}
	if f.Nombre != "" {
		q.Set("nombre", f.Nombre)
	}
	if f.Estado != "" {
		q.Set("estado", string(f.Estado))
	}
	if f.FechaDesde != nil {
		q.Set("fecha_after", f.FechaDesde.Format(layoutFecha))
	}
	if f.FechaHasta != nil {
		q.Set("fecha_before", f.FechaHasta.Format(layoutFecha))
	}
	return q
}

func (r *Facturas) Listar(ctx context.Context, u entity.Usuario, f repository.FiltroFacturas) (*repository.Pagina[entity.Factura], error) {
	var out paginaJSON[facturaJSON]
	err := r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodGet, path: pathFacturas, query: filtrosFacturas(f),
		msg: "Error al obtener las facturas",
	}, &out)
	if err != nil {
		return nil, err
	}
	return convertirPagina(out, facturaJSON.entidad), nil
}

func (r *Facturas) Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.Factura, error) {
	return r.factura(ctx, u, peticion{
		method: http.MethodGet, path: pathFactura(id, ""),
		msg: "Error al obtener la factura",
	})
}

// Crear envía la cabecera con sus líneas en una sola petición.
func (r *Facturas) Crear(ctx context.Context, u entity.Usuario, datos repository.DatosFactura, lineas []repository.NuevaLinea) (*entity.Factura, error) {
	body := datosFactura(datos)
	for _, l := range lineas {
		body.Lineas = append(body.Lineas, nuevaLinea(l))
	}
	return r.factura(ctx, u, peticion{
		method: http.MethodPost, path: pathFacturas, body: body,
		msg: "Error al crear la factura",
	})
}

func (r *Facturas) Actualizar(ctx context.Context, u entity.Usuario, id int64, datos repository.DatosFactura) (*entity.Factura, error) {
	return r.factura(ctx, u, peticion{
		method: http.MethodPut, path: pathFactura(id, ""), body: datosFactura(datos),
		msg: "Error al actualizar la factura",
	})
}

func (r *Facturas) CambiarEstado(ctx context.Context, u entity.Usuario, id int64, estado entity.EstadoFactura, fechaPago *time.Time) (*entity.Factura, error) {
	body := cambioEstadoJSON{Estado: string(estado)}
	if fechaPago != nil {
		body.FechaPago = &fecha{*fechaPago}
	}
	return r.factura(ctx, u, peticion{
		method: http.MethodPatch, path: pathFactura(id, ""), body: body,
		msg: "Error al cambiar el estado de la factura",
	})
}

func (r *Facturas) Eliminar(ctx context.Context, u entity.Usuario, id int64) error {
	return r.c.hacerJSON(ctx, u, peticion{
		method: http.MethodDelete, path: pathFactura(id, ""),
		msg: "Error al eliminar la factura",
	}, nil)
}

func (r *Facturas) Emitir(ctx context.Context, u entity.Usuario, id int64) (*entity.Factura, error) {
	return r.factura(ctx, u, peticion{
		method: http.MethodPost, path: pathFactura(id, "emitir"),
		msg: "Error al emitir la factura",
	})
}

func (r *Facturas) Anular(ctx context.Context, u entity.Usuario, id int64, motivo string) (*entity.Factura, error) {
	return r.factura(ctx, u, peticion{
		method: http.MethodPost, path: pathFactura(id, "anular"), body: anularJSON{Motivo: motivo},
		msg: "Error al anular la factura",
	})
}

func (r *Facturas) DescargarPDF(ctx context.Context, u entity.Usuario, id int64, mostrarIban bool) ([]byte, error) {
	q := url.Values{}
	if mostrarIban {
		q.Set("mostrar_iban", "true")
	}
	return r.c.hacer(ctx, u, peticion{
		method: http.MethodGet, path: pathFactura(id, "pdf"), query: q,
		msg: "Error al descargar el PDF de la factura",
	}, maxBodyPDF)
}

func (r *Facturas) factura(ctx context.Context, u entity.Usuario, p peticion) (*entity.Factura, error) {
	var out facturaJSON
	if err := r.c.hacerJSON(ctx, u, p, &out); err != nil {
		return nil, err
	}
	f := out.entidad()
	return &f, nil
}
