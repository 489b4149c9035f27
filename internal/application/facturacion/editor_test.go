package facturacion_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreria-facturacion/internal/application/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	calculo "github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
)

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo falso
// ──────────────────────────────────────────────────────────────────────────────

type catalogoFake struct {
	libros    map[int64]entity.Libro
	busquedas int
	lecturas  int
}

func (c *catalogoFake) BuscarPorTitulo(_ context.Context, _ entity.Usuario, _ string) ([]entity.Libro, error) {
	c.busquedas++
	out := make([]entity.Libro, 0, len(c.libros))
	for id := int64(1); id <= int64(len(c.libros)); id++ {
		out = append(out, c.libros[id])
	}
	return out, nil
}

func (c *catalogoFake) Obtener(_ context.Context, _ entity.Usuario, id int64) (*entity.Libro, error) {
	c.lecturas++
	l, ok := c.libros[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

var usuario = entity.Usuario{ID: "user_1"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nuevoCatalogo() *catalogoFake {
	return &catalogoFake{libros: map[int64]entity.Libro{
		1: {ID: 1, Titulo: "El árbol de la ciencia", Precio: dec("12.50"), PVP: dec("13.00"), Cantidad: 3},
		2: {ID: 2, Titulo: "Árbol genealógico", Precio: dec("8.00"), Cantidad: 10},
		3: {ID: 3, Titulo: "Poesía completa", Precio: dec("30.00"), Cantidad: 1},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregar y editar
// ──────────────────────────────────────────────────────────────────────────────

func TestEditor_Agregar_CalculaImporte(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)

	l, err := e.Agregar(cat.libros[1], 2)
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(l.Importe))
	assert.True(t, l.Nueva())
	assert.NotEmpty(t, l.Clave)
	assert.Equal(t, 3, l.Stock)
	assert.Len(t, e.Lineas(), 1)
}

func TestEditor_Agregar_SinStock_NoModificaLista(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)
	_, err := e.Agregar(cat.libros[2], 1)
	require.NoError(t, err)
	antes := e.Lineas()

	_, err = e.Agregar(cat.libros[3], 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, antes, e.Lineas(), "la lista no debe cambiar si se rechaza la línea")

	_, err = e.Agregar(cat.libros[3], 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, antes, e.Lineas())
}

func TestEditor_CambiarCantidad_UsaStockCapturado(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)
	_, err := e.Agregar(cat.libros[1], 1)
	require.NoError(t, err)

	// El stock real cambia después de añadir; el editor no vuelve a leerlo.
	l := cat.libros[1]
	l.Cantidad = 0
	cat.libros[1] = l

	require.NoError(t, e.CambiarCantidad(0, 3))
	assert.True(t, dec("37.5").Equal(e.Lineas()[0].Importe))
	assert.Zero(t, cat.lecturas)

	err = e.CambiarCantidad(0, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, e.Lineas()[0].Cantidad, "la cantidad rechazada no se aplica")
}

func TestEditor_CambiarPrecio(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)
	_, err := e.Agregar(cat.libros[2], 3)
	require.NoError(t, err)

	require.NoError(t, e.CambiarPrecio(0, dec("7.333")))
	assert.True(t, dec("21.999").Equal(e.Lineas()[0].Importe), "el importe no se redondea en el editor")

	assert.ErrorIs(t, e.CambiarPrecio(5, dec("1")), domain.ErrInvalidInput)
}

func TestEditor_Quitar_RecuerdaLineasExistentes(t *testing.T) {
	e := facturacion.NewEditor(nuevoCatalogo())
	e.CargarExistentes([]entity.LineaFactura{
		{ID: 40, Libro: entity.LibroLinea{ID: 1, Titulo: "A", Cantidad: 2}, Cantidad: 1, Precio: dec("10"), Importe: dec("10")},
		{ID: 41, Libro: entity.LibroLinea{ID: 2, Titulo: "B", Cantidad: 0}, Cantidad: 2, Precio: dec("5"), Importe: dec("10")},
	})
	_, err := e.Agregar(entity.Libro{ID: 3, Titulo: "C", Precio: dec("1"), Cantidad: 5}, 1)
	require.NoError(t, err)

	require.NoError(t, e.Quitar(2))
	require.NoError(t, e.Quitar(0))

	assert.Equal(t, []int64{40}, e.Eliminadas(), "solo las líneas guardadas se anotan para borrar")
	require.Len(t, e.Lineas(), 1)
	assert.Equal(t, int64(41), e.Lineas()[0].ID)
	assert.Equal(t, 2, e.Lineas()[0].Stock, "una línea existente dispone de lo que ya reserva")
}

func TestEditor_Totales_UsaCalculadoraCompartida(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)
	_, _ = e.Agregar(entity.Libro{ID: 9, Titulo: "X", Precio: dec("10"), Cantidad: 9}, 1)
	_, _ = e.Agregar(entity.Libro{ID: 8, Titulo: "Y", Precio: dec("20"), Cantidad: 9}, 1)

	p := calculo.ParametrosTotales{Descuento: dec("10"), IVA: dec("21"), Recargo: dec("5.2"), GastosEnvio: dec("5")}
	esperado := calculo.CalcularTotales([]decimal.Decimal{dec("10"), dec("20")}, p)
	got := e.Totales(p)
	assert.True(t, esperado.Total.Equal(got.Total), "total %s", got.Total)
	assert.True(t, esperado.ImporteRecargo.Equal(got.ImporteRecargo))
	assert.True(t, dec("39.36884").Equal(got.Total))
}

// ──────────────────────────────────────────────────────────────────────────────
// Revalidación previa al envío
// ──────────────────────────────────────────────────────────────────────────────

func TestEditor_RevalidarStock_SoloLineasNuevas(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)
	e.CargarExistentes([]entity.LineaFactura{
		{ID: 50, Libro: entity.LibroLinea{ID: 3, Cantidad: 0}, Cantidad: 1, Precio: dec("30"), Importe: dec("30")},
	})
	_, err := e.Agregar(cat.libros[1], 2)
	require.NoError(t, err)
	_, err = e.Agregar(cat.libros[1], 1)
	require.NoError(t, err)

	require.NoError(t, e.RevalidarStock(context.Background(), usuario))
	assert.Equal(t, 1, cat.lecturas, "un libro repetido se lee una vez y la línea existente no se lee")

	// Otro usuario vendió un ejemplar: 2 + 1 ya no caben en 2.
	l := cat.libros[1]
	l.Cantidad = 2
	cat.libros[1] = l
	err = e.RevalidarStock(context.Background(), usuario)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestEditor_NuevasLineas_RedondeaImporte(t *testing.T) {
	e := facturacion.NewEditor(nuevoCatalogo())
	_, err := e.Agregar(entity.Libro{ID: 7, Titulo: "Z", Precio: dec("3.335"), Cantidad: 5}, 1)
	require.NoError(t, err)

	nuevas := e.NuevasLineas(12)
	require.Len(t, nuevas, 1)
	assert.Equal(t, int64(12), nuevas[0].FacturaID)
	assert.True(t, dec("3.34").Equal(nuevas[0].Importe))
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizar(t *testing.T) {
	assert.Equal(t, "arbol genealogico", facturacion.Normalizar("Árbol Genealógico"))
	assert.Equal(t, "espana", facturacion.Normalizar("ESPAÑA"))
}

func TestEditor_Buscar_OrdenaSinTildes(t *testing.T) {
	cat := nuevoCatalogo()
	e := facturacion.NewEditor(cat)

	res, err := e.Buscar(context.Background(), usuario, "arbol")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, int64(2), res[0].ID, "«Árbol genealógico» empieza por el texto")
	assert.Equal(t, int64(1), res[1].ID, "«El árbol de la ciencia» lo contiene")
	assert.Equal(t, int64(3), res[2].ID)

	res, err = e.Buscar(context.Background(), usuario, "   ")
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Equal(t, 1, cat.busquedas, "una búsqueda vacía no consulta el catálogo")
}
