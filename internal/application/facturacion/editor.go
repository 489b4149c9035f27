package facturacion

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	calculo "github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/domain/repository"
)

// CatalogoLibros capacidad de búsqueda de libros que necesita el editor.
type CatalogoLibros interface {
	BuscarPorTitulo(ctx context.Context, u entity.Usuario, titulo string) ([]entity.Libro, error)
	Obtener(ctx context.Context, u entity.Usuario, id int64) (*entity.Libro, error)
}

// LineaEditable línea en edición. ID es 0 mientras la línea no exista en la API.
type LineaEditable struct {
	Clave     string
	ID        int64
	Libro     entity.LibroLinea
	Cantidad  int
	Precio    decimal.Decimal
	Descuento decimal.Decimal
	Importe   decimal.Decimal
	// Stock disponible para esta línea según la última lectura del libro.
	Stock int
}

// Nueva indica si la línea todavía no existe en la API.
func (l LineaEditable) Nueva() bool { return l.ID == 0 }

// Editor lista ordenada de líneas de una factura en edición.
// Cada formulario tiene el suyo; no es seguro para uso concurrente.
type Editor struct {
	catalogo   CatalogoLibros
	lineas     []LineaEditable
	eliminadas []int64
}

// NewEditor crea un editor vacío.
func NewEditor(catalogo CatalogoLibros) *Editor {
	return &Editor{catalogo: catalogo}
}

// CargarExistentes inicializa el editor con las líneas guardadas de una factura.
// El stock disponible de cada línea incluye las unidades que ella misma ya reserva.
func (e *Editor) CargarExistentes(lineas []entity.LineaFactura) {
	e.lineas = e.lineas[:0]
	e.eliminadas = nil
	for _, l := range lineas {
		e.lineas = append(e.lineas, LineaEditable{
			Clave:     uuid.NewString(),
			ID:        l.ID,
			Libro:     l.Libro,
			Cantidad:  l.Cantidad,
			Precio:    l.Precio,
			Descuento: l.Descuento,
			Importe:   l.Importe,
			Stock:     l.Libro.Cantidad + l.Cantidad,
		})
	}
}

// Lineas devuelve una copia de las líneas en orden.
func (e *Editor) Lineas() []LineaEditable {
	return append([]LineaEditable(nil), e.lineas...)
}

// Eliminadas IDs de líneas existentes quitadas del editor, pendientes de borrar.
func (e *Editor) Eliminadas() []int64 {
	return append([]int64(nil), e.eliminadas...)
}

// Buscar consulta el catálogo y ordena los candidatos: primero los que empiezan
// por el texto buscado, después los que lo contienen, ignorando tildes y mayúsculas.
func (e *Editor) Buscar(ctx context.Context, u entity.Usuario, texto string) ([]entity.Libro, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return []entity.Libro{}, nil
	}
	candidatos, err := e.catalogo.BuscarPorTitulo(ctx, u, texto)
	if err != nil {
		return nil, err
	}
	return OrdenarPorRelevancia(candidatos, texto), nil
}

// Agregar añade una línea con el precio neto del libro. Si la cantidad supera el
// stock registrado no modifica la lista.
func (e *Editor) Agregar(libro entity.Libro, cantidad int) (LineaEditable, error) {
	if cantidad <= 0 {
		return LineaEditable{}, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !libro.HayStock(cantidad) {
		return LineaEditable{}, errorStock(libro.Titulo, libro.Cantidad)
	}
	l := LineaEditable{
		Clave: uuid.NewString(),
		Libro: entity.LibroLinea{
			ID:        libro.ID,
			Titulo:    libro.Titulo,
			Precio:    libro.Precio,
			Descuento: libro.Descuento,
			PVP:       libro.PVP,
			Cantidad:  libro.Cantidad,
		},
		Cantidad: cantidad,
		Precio:   libro.Precio,
		Importe:  calculo.ImporteLinea(libro.Precio, cantidad),
		Stock:    libro.Cantidad,
	}
	e.lineas = append(e.lineas, l)
	return l, nil
}

// CambiarCantidad recalcula el importe validando contra el stock capturado al añadir.
func (e *Editor) CambiarCantidad(i, cantidad int) error {
	l, err := e.linea(i)
	if err != nil {
		return err
	}
	if cantidad <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if cantidad > l.Stock {
		return errorStock(l.Libro.Titulo, l.Stock)
	}
	l.Cantidad = cantidad
	l.Importe = calculo.ImporteLinea(l.Precio, cantidad)
	return nil
}

// CambiarPrecio recalcula el importe con el nuevo precio unitario.
func (e *Editor) CambiarPrecio(i int, precio decimal.Decimal) error {
	l, err := e.linea(i)
	if err != nil {
		return err
	}
	if l.Cantidad > l.Stock {
		return errorStock(l.Libro.Titulo, l.Stock)
	}
	l.Precio = precio
	l.Importe = calculo.ImporteLinea(precio, l.Cantidad)
	return nil
}

// CambiarDescuento guarda el % de descuento de la línea (informativo; el importe no cambia).
func (e *Editor) CambiarDescuento(i int, descuento decimal.Decimal) error {
	l, err := e.linea(i)
	if err != nil {
		return err
	}
	l.Descuento = descuento
	return nil
}

// Quitar elimina la línea i; si ya existía en la API se anota para borrarla al guardar.
func (e *Editor) Quitar(i int) error {
	l, err := e.linea(i)
	if err != nil {
		return err
	}
	if !l.Nueva() {
		e.eliminadas = append(e.eliminadas, l.ID)
	}
	e.lineas = append(e.lineas[:i], e.lineas[i+1:]...)
	return nil
}

// Indice devuelve la posición de la línea con el ID de servidor dado, o -1.
func (e *Editor) Indice(id int64) int {
	for i := range e.lineas {
		if e.lineas[i].ID == id {
			return i
		}
	}
	return -1
}

// Importes importe de cada línea en orden.
func (e *Editor) Importes() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(e.lineas))
	for _, l := range e.lineas {
		out = append(out, l.Importe)
	}
	return out
}

// Totales calcula el desglose con la calculadora compartida.
func (e *Editor) Totales(p calculo.ParametrosTotales) calculo.Totales {
	return calculo.CalcularTotales(e.Importes(), p)
}

// RevalidarStock vuelve a leer el stock de los libros de las líneas nuevas y
// comprueba que la cantidad agregada por libro sigue cubierta. Las líneas ya
// guardadas no se revisan: su stock ya está descontado en la API.
func (e *Editor) RevalidarStock(ctx context.Context, u entity.Usuario) error {
	pedidas := map[int64]int{}
	var orden []int64
	for _, l := range e.lineas {
		if !l.Nueva() {
			continue
		}
		if _, ok := pedidas[l.Libro.ID]; !ok {
			orden = append(orden, l.Libro.ID)
		}
		pedidas[l.Libro.ID] += l.Cantidad
	}
	for _, id := range orden {
		libro, err := e.catalogo.Obtener(ctx, u, id)
		if err != nil {
			return err
		}
		if !libro.HayStock(pedidas[id]) {
			return errorStock(libro.Titulo, libro.Cantidad)
		}
		for i := range e.lineas {
			if e.lineas[i].Nueva() && e.lineas[i].Libro.ID == id {
				e.lineas[i].Stock = libro.Cantidad
			}
		}
	}
	return nil
}

// NuevasLineas líneas pendientes de crear, listas para la API.
func (e *Editor) NuevasLineas(facturaID int64) []repository.NuevaLinea {
	var out []repository.NuevaLinea
	for _, l := range e.lineas {
		if l.Nueva() {
			out = append(out, aNuevaLinea(facturaID, l))
		}
	}
	return out
}

// LineasExistentes líneas ya guardadas que siguen en el editor.
func (e *Editor) LineasExistentes() []LineaEditable {
	var out []LineaEditable
	for _, l := range e.lineas {
		if !l.Nueva() {
			out = append(out, l)
		}
	}
	return out
}

func aNuevaLinea(facturaID int64, l LineaEditable) repository.NuevaLinea {
	return repository.NuevaLinea{
		FacturaID: facturaID,
		LibroID:   l.Libro.ID,
		Titulo:    l.Libro.Titulo,
		Cantidad:  l.Cantidad,
		Precio:    l.Precio,
		Descuento: l.Descuento,
		Importe:   l.Importe.Round(2),
	}
}

func (e *Editor) linea(i int) (*LineaEditable, error) {
	if i < 0 || i >= len(e.lineas) {
		return nil, fmt.Errorf("%w: línea %d inexistente", domain.ErrInvalidInput, i)
	}
	return &e.lineas[i], nil
}

func errorStock(titulo string, disponible int) error {
	return fmt.Errorf("%w: «%s», disponible %d", domain.ErrInsufficientStock, titulo, disponible)
}

// ── Búsqueda sin tildes ───────────────────────────────────────────────────────

// Normalizar pliega mayúsculas y elimina diacríticos ("Canción" → "cancion").
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// OrdenarPorRelevancia ordena de forma estable: prefijo, contiene, resto.
func OrdenarPorRelevancia(libros []entity.Libro, texto string) []entity.Libro {
	q := Normalizar(strings.TrimSpace(texto))
	rango := func(l entity.Libro) int {
		t := Normalizar(l.Titulo)
		switch {
		case strings.HasPrefix(t, q):
			return 0
		case strings.Contains(t, q):
			return 1
		default:
			return 2
		}
	}
	out := append([]entity.Libro(nil), libros...)
	sort.SliceStable(out, func(i, j int) bool { return rango(out[i]) < rango(out[j]) })
	return out
}
