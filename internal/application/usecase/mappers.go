package usecase

import (
	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

func toLibroResponse(l *entity.Libro) dto.LibroResponse {
	return dto.LibroResponse{
		ID:        l.ID,
		Titulo:    l.Titulo,
		PVP:       l.PVP,
		Precio:    l.Precio,
		Descuento: l.Descuento,
		Cantidad:  l.Cantidad,
	}
}

func toLineaResponse(l *entity.LineaFactura) dto.LineaFacturaResponse {
	return dto.LineaFacturaResponse{
		ID:          l.ID,
		FacturaID:   l.FacturaID,
		LibroID:     l.Libro.ID,
		LibroTitulo: l.Libro.Titulo,
		Cantidad:    l.Cantidad,
		Precio:      l.Precio,
		Descuento:   l.Descuento,
		Importe:     l.Importe,
	}
}

func toLineasResponse(lineas []entity.LineaFactura) []dto.LineaFacturaResponse {
	out := make([]dto.LineaFacturaResponse, 0, len(lineas))
	for i := range lineas {
		out = append(out, toLineaResponse(&lineas[i]))
	}
	return out
}

// toFacturaResponse incluye el desglose calculado con la misma calculadora que el
// formulario, recargo de equivalencia incluido.
func toFacturaResponse(f *entity.Factura) dto.FacturaResponse {
	r := dto.FacturaResponse{
		ID:              f.ID,
		Numero:          f.Numero,
		NumeroBorrador:  f.NumeroBorrador,
		Cliente:         f.Cliente,
		Nombre:          f.Nombre,
		NIF:             f.NIF,
		Domicilio:       f.Domicilio,
		CPCiudad:        f.CPCiudad,
		Telefono:        f.Telefono,
		Descuento:       f.Descuento,
		IVA:             f.IVA,
		Recargo:         f.Recargo,
		GastosEnvio:     f.GastosEnvio,
		BaseIVA:         f.BaseIVA,
		Total:           f.Total,
		Notas:           f.Notas,
		Estado:          f.Estado.String(),
		MotivoAnulacion: f.MotivoAnulacion,
		Lineas:          toLineasResponse(f.Lineas),
	}
	if !f.Fecha.IsZero() {
		r.Fecha = f.Fecha.Format(layoutFecha)
	}
	if f.FechaPago != nil {
		r.FechaPago = f.FechaPago.Format(layoutFecha)
	}
	tot := facturacion.CalcularTotales(f.Importes(), parametrosDe(f)).Redondeados()
	r.Totales = &tot
	return r
}

func parametrosDe(f *entity.Factura) facturacion.ParametrosTotales {
	return facturacion.ParametrosTotales{
		Descuento:   f.Descuento,
		IVA:         f.IVA,
		Recargo:     f.Recargo,
		GastosEnvio: f.GastosEnvio,
	}
}

func toEmpresaResponse(e *entity.Empresa) dto.EmpresaResponse {
	return dto.EmpresaResponse{
		ID:        e.ID,
		Nombre:    e.Nombre,
		Direccion: e.Direccion,
		NIF:       e.NIF,
		GIF:       e.GIF,
		IBAN:      e.IBAN,
		CreatedOn: e.CreatedOn,
		UpdatedOn: e.UpdatedOn,
	}
}

func toPageResponse[E, R any](p *repository.Pagina[E], req dto.PageRequest, conv func(*E) R) *dto.PageResponse[R] {
	out := &dto.PageResponse[R]{
		Count:    p.Count,
		Next:     p.Next,
		Previous: p.Previous,
		Page:     req.Page,
		PageSize: req.PageSize,
		Results:  make([]R, 0, len(p.Results)),
	}
	for i := range p.Results {
		out.Results = append(out.Results, conv(&p.Results[i]))
	}
	return out
}
