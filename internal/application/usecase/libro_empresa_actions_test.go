package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/application/usecase"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/cache"
)

func nuevasLibroActions() (*usecase.LibroActions, *librosFake) {
	reg := &registro{}
	repo := &librosFake{reg: reg, libros: map[int64]entity.Libro{
		1: {ID: 1, Titulo: "Tirano Banderas", Precio: dec("9"), Cantidad: 4},
		2: {ID: 2, Titulo: "Tiempo de silencio", Precio: dec("11"), Cantidad: 1},
	}}
	return usecase.NewLibroActions(repo, cache.NewMemoryStore(time.Minute), zerolog.Nop(), time.Minute), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Libros
// ──────────────────────────────────────────────────────────────────────────────

func TestLibros_ListarCacheadoHastaMutacion(t *testing.T) {
	a, repo := nuevasLibroActions()
	ctx := context.Background()

	p, err := a.Listar(ctx, usuario, dto.LibroListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, 1, p.Page)
	_, _ = a.Listar(ctx, usuario, dto.LibroListRequest{})
	assert.Equal(t, 1, contar(repo.reg.llamadas, "libros.listar"))

	res := a.Crear(ctx, usuario, dto.CrearLibroRequest{Titulo: "Nada", Precio: dec("12"), Cantidad: 3})
	require.True(t, res.Success, res.Error)

	p, err = a.Listar(ctx, usuario, dto.LibroListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Count, "tras crear, la lista se vuelve a pedir")
}

func TestLibros_CrearInvalido(t *testing.T) {
	a, repo := nuevasLibroActions()

	res := a.Crear(context.Background(), usuario, dto.CrearLibroRequest{Titulo: "Nada", Cantidad: -1})
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloValidacion, res.Tipo)
	assert.Empty(t, repo.reg.llamadas)

	neg := -2
	res = a.Actualizar(context.Background(), usuario, 1, dto.ActualizarLibroRequest{Cantidad: &neg})
	assert.False(t, res.Success)
	assert.Empty(t, repo.reg.llamadas)
}

func TestLibros_EliminarError(t *testing.T) {
	a, repo := nuevasLibroActions()
	repo.err = remoto("Error al eliminar el libro")

	res := a.Eliminar(context.Background(), usuario, 1)
	assert.False(t, res.Success)
	assert.Equal(t, "Error al eliminar el libro", res.Error)
}

func TestLibros_Buscar(t *testing.T) {
	a, _ := nuevasLibroActions()
	res, err := a.Buscar(context.Background(), usuario, "tiempo")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Tiempo de silencio", res[0].Titulo)
}

func TestLibros_ObtenerSinUsuario(t *testing.T) {
	a, _ := nuevasLibroActions()
	_, err := a.Obtener(context.Background(), entity.Usuario{}, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLibros_ImportarActualizaPorTitulo(t *testing.T) {
	a, repo := nuevasLibroActions()
	ctx := context.Background()

	res, creado := a.Importar(ctx, usuario, dto.ImportarLibroRequest{Titulo: "  TIEMPO DE SILENCIO ", Cantidad: 7, Precio: decPtr("12.5")})
	require.True(t, res.Success, res.Error)
	assert.False(t, creado, "el título ya existe aunque cambien mayúsculas y espacios")
	assert.Equal(t, 7, repo.libros[2].Cantidad)
	assert.True(t, dec("12.5").Equal(repo.libros[2].Precio))
	assert.Len(t, repo.libros, 2)

	res, creado = a.Importar(ctx, usuario, dto.ImportarLibroRequest{Titulo: "Luces de bohemia", Cantidad: 3})
	require.True(t, res.Success, res.Error)
	assert.True(t, creado)
	assert.Len(t, repo.libros, 3)

	res, creado = a.Importar(ctx, usuario, dto.ImportarLibroRequest{Titulo: "Luces de bohemia", Cantidad: 5})
	require.True(t, res.Success, res.Error)
	assert.False(t, creado, "importar dos veces no duplica")
	assert.Len(t, repo.libros, 3)
	assert.Equal(t, 5, repo.libros[3].Cantidad)
}

func TestLibros_ImportarSinTitulo(t *testing.T) {
	a, repo := nuevasLibroActions()

	res, creado := a.Importar(context.Background(), usuario, dto.ImportarLibroRequest{Titulo: "   "})
	assert.False(t, res.Success)
	assert.False(t, creado)
	assert.Equal(t, dto.FalloValidacion, res.Tipo)
	assert.Empty(t, repo.reg.llamadas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas sueltas
// ──────────────────────────────────────────────────────────────────────────────

type lineasSueltas struct {
	reg      *registro
	libros   *librosFake
	facturas *facturasFake
	lineas   *lineasFake
	a        *usecase.LineaActions
}

// nuevasLineaActions factura 3 en borrador con la línea 30 y factura 7 emitida con la línea 50.
// El libro 1 tiene 1 unidad libre en stock.
func nuevasLineaActions() *lineasSueltas {
	reg := &registro{}
	l := &lineasSueltas{
		reg:    reg,
		libros: &librosFake{reg: reg, libros: map[int64]entity.Libro{1: {ID: 1, Titulo: "Tirano Banderas", Precio: dec("9"), Cantidad: 1}}},
		facturas: &facturasFake{reg: reg, facturas: map[int64]*entity.Factura{
			3: {ID: 3, Estado: entity.EstadoBorrador},
			7: {ID: 7, Estado: entity.EstadoEmitida, Numero: "F-2026-0007"},
		}},
		lineas: &lineasFake{reg: reg, porID: map[int64]entity.LineaFactura{
			30: {ID: 30, FacturaID: 3, Libro: entity.LibroLinea{ID: 1}, Cantidad: 2, Precio: dec("9"), Importe: dec("18")},
			50: {ID: 50, FacturaID: 7, Libro: entity.LibroLinea{ID: 1}, Cantidad: 1, Precio: dec("9"), Importe: dec("9")},
		}},
	}
	l.a = usecase.NewLineaActions(l.lineas, l.facturas, l.libros, nil, zerolog.Nop())
	return l
}

func TestLineas_CrearCompruebaStock(t *testing.T) {
	l := nuevasLineaActions()
	ctx := context.Background()

	res := l.a.Crear(ctx, usuario, dto.CrearLineaRequest{FacturaID: 3, LibroID: 1, Cantidad: 2})
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloConflicto, res.Tipo)
	assert.NotContains(t, l.reg.llamadas, "lineas.crear:libro=1")

	res = l.a.Crear(ctx, usuario, dto.CrearLineaRequest{FacturaID: 3, LibroID: 1, Cantidad: 1})
	require.True(t, res.Success, res.Error)
	linea := res.Data.(dto.LineaFacturaResponse)
	assert.True(t, dec("9").Equal(linea.Importe), "sin precio explícito se usa el del libro")
}

func TestLineas_CrearConPrecioCero(t *testing.T) {
	l := nuevasLineaActions()

	res := l.a.Crear(context.Background(), usuario, dto.CrearLineaRequest{FacturaID: 3, LibroID: 1, Cantidad: 1, Precio: decPtr("0")})
	require.True(t, res.Success, res.Error)
	linea := res.Data.(dto.LineaFacturaResponse)
	assert.True(t, linea.Importe.IsZero(), "un ejemplar regalado conserva precio 0")
}

func TestLineas_FacturaEmitidaNoAdmiteCambios(t *testing.T) {
	l := nuevasLineaActions()
	ctx := context.Background()

	res := l.a.Crear(ctx, usuario, dto.CrearLineaRequest{FacturaID: 7, LibroID: 1, Cantidad: 1})
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloConflicto, res.Tipo)

	res = l.a.Actualizar(ctx, usuario, 50, dto.ActualizarLineaRequest{Cantidad: 1})
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloConflicto, res.Tipo)

	res = l.a.Eliminar(ctx, usuario, 50)
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloConflicto, res.Tipo)

	assert.Equal(t, 3, contar(l.reg.llamadas, "facturas.obtener:7"), "cada mutación consulta el estado de la factura")
	for _, c := range l.reg.llamadas {
		assert.NotContains(t, []string{"lineas.crear:libro=1", "lineas.actualizar:50", "lineas.eliminar:50"}, c)
	}
	assert.Contains(t, l.lineas.porID, int64(50))
}

func TestLineas_ActualizarCompruebaStockConLoReservado(t *testing.T) {
	l := nuevasLineaActions()
	ctx := context.Background()

	// la línea 30 reserva 2 y quedan 1 libres: el máximo es 3
	res := l.a.Actualizar(ctx, usuario, 30, dto.ActualizarLineaRequest{Cantidad: 999})
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloConflicto, res.Tipo)
	assert.Contains(t, res.Error, "disponible 3")
	assert.NotContains(t, l.reg.llamadas, "lineas.actualizar:30")

	res = l.a.Actualizar(ctx, usuario, 30, dto.ActualizarLineaRequest{Cantidad: 3})
	require.True(t, res.Success, res.Error)
	linea := l.lineas.porID[30]
	assert.Equal(t, 3, linea.Cantidad)
	assert.True(t, dec("9").Equal(linea.Precio), "sin precio se conserva el guardado")
}

func TestLineas_ActualizarNoCambiaDeFactura(t *testing.T) {
	l := nuevasLineaActions()

	res := l.a.Actualizar(context.Background(), usuario, 30, dto.ActualizarLineaRequest{FacturaID: 7, Cantidad: 1})
	assert.False(t, res.Success)
	assert.Equal(t, dto.FalloValidacion, res.Tipo)
}

func TestLineas_EliminarUltimaLineaDeBorrador(t *testing.T) {
	l := nuevasLineaActions()
	ctx := context.Background()

	res := l.a.Eliminar(ctx, usuario, 30)
	assert.False(t, res.Success, "un borrador conserva al menos una línea")
	assert.Equal(t, dto.FalloValidacion, res.Tipo)

	l.lineas.porID[31] = entity.LineaFactura{ID: 31, FacturaID: 3, Libro: entity.LibroLinea{ID: 1}, Cantidad: 1}
	res = l.a.Eliminar(ctx, usuario, 30)
	require.True(t, res.Success, res.Error)
	assert.NotContains(t, l.lineas.porID, int64(30))
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresa_GuardarCreaYLuegoActualiza(t *testing.T) {
	reg := &registro{}
	repo := &empresaFake{reg: reg}
	a := usecase.NewEmpresaActions(repo, cache.NewMemoryStore(time.Minute), zerolog.Nop(), time.Minute)
	ctx := context.Background()

	_, err := a.Obtener(ctx, usuario)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res := a.Guardar(ctx, usuario, dto.GuardarEmpresaRequest{Nombre: "Librería Central", NIF: "B12345678", IBAN: "ES91 2100 0418 4502 0005 1332"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "ES9121000418450200051332", res.Data.(dto.EmpresaResponse).IBAN)
	assert.Contains(t, reg.llamadas, "empresa.crear")

	res = a.Guardar(ctx, usuario, dto.GuardarEmpresaRequest{Nombre: "Librería Central SL", NIF: "B12345678"})
	require.True(t, res.Success, res.Error)
	assert.Contains(t, reg.llamadas, "empresa.actualizar:1")

	e, err := a.Obtener(ctx, usuario)
	require.NoError(t, err)
	assert.Equal(t, "Librería Central SL", e.Nombre)
}

func TestEmpresa_GuardarSinNIF(t *testing.T) {
	reg := &registro{}
	a := usecase.NewEmpresaActions(&empresaFake{reg: reg}, nil, zerolog.Nop(), time.Minute)

	res := a.Guardar(context.Background(), usuario, dto.GuardarEmpresaRequest{Nombre: "X"})
	assert.False(t, res.Success)
	assert.Empty(t, reg.llamadas)
}
