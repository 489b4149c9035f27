package facturacion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
)

func facturaEn(estado entity.EstadoFactura, lineas int) *entity.Factura {
	f := &entity.Factura{ID: 1, Estado: estado}
	for i := 0; i < lineas; i++ {
		f.Lineas = append(f.Lineas, entity.LineaFactura{ID: int64(i + 1), Cantidad: 1})
	}
	return f
}

func TestPuedeEmitir(t *testing.T) {
	require.NoError(t, facturacion.PuedeEmitir(facturaEn(entity.EstadoBorrador, 1)))

	err := facturacion.PuedeEmitir(facturaEn(entity.EstadoBorrador, 0))
	assert.ErrorIs(t, err, domain.ErrFacturaSinLineas, "un borrador sin líneas no se emite")

	for _, e := range []entity.EstadoFactura{entity.EstadoEmitida, entity.EstadoPagada, entity.EstadoAnulada} {
		assert.ErrorIs(t, facturacion.PuedeEmitir(facturaEn(e, 2)), domain.ErrTransicionInvalida, "estado %s", e)
	}
}

func TestPuedeAnular(t *testing.T) {
	require.NoError(t, facturacion.PuedeAnular(facturaEn(entity.EstadoEmitida, 1), "error en datos del cliente"))

	for _, motivo := range []string{"", "   ", "\t\n"} {
		assert.ErrorIs(t, facturacion.PuedeAnular(facturaEn(entity.EstadoEmitida, 1), motivo), domain.ErrMotivoRequerido,
			"motivo %q debe rechazarse", motivo)
	}
	assert.ErrorIs(t, facturacion.PuedeAnular(facturaEn(entity.EstadoBorrador, 1), "x"), domain.ErrTransicionInvalida)
	assert.ErrorIs(t, facturacion.PuedeAnular(facturaEn(entity.EstadoAnulada, 1), "x"), domain.ErrTransicionInvalida)
}

func TestPuedeEliminar_SoloBorradores(t *testing.T) {
	require.NoError(t, facturacion.PuedeEliminar(facturaEn(entity.EstadoBorrador, 3)))
	assert.ErrorIs(t, facturacion.PuedeEliminar(facturaEn(entity.EstadoEmitida, 1)), domain.ErrTransicionInvalida,
		"una factura emitida solo puede anularse")
	assert.ErrorIs(t, facturacion.PuedeEliminar(facturaEn(entity.EstadoPagada, 1)), domain.ErrTransicionInvalida)
}

func TestPuedeMarcarPagada(t *testing.T) {
	hoy := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, facturacion.PuedeMarcarPagada(facturaEn(entity.EstadoEmitida, 1), hoy))
	assert.ErrorIs(t, facturacion.PuedeMarcarPagada(facturaEn(entity.EstadoEmitida, 1), time.Time{}), domain.ErrFechaPagoRequerida)
	assert.ErrorIs(t, facturacion.PuedeMarcarPagada(facturaEn(entity.EstadoBorrador, 1), hoy), domain.ErrTransicionInvalida)
}

func TestEstadoFactura_Valido(t *testing.T) {
	assert.True(t, entity.EstadoPagada.Valido())
	assert.False(t, entity.EstadoFactura("cerrada").Valido())
	assert.True(t, facturacion.Editable(facturaEn(entity.EstadoBorrador, 0)))
	assert.False(t, facturacion.Editable(facturaEn(entity.EstadoEmitida, 0)))
}
