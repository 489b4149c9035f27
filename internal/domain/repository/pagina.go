package repository

// Tamaño de página por defecto de la API remota.
const DefaultPageSize = 10

// Pagina respuesta paginada de la API ({count, next, previous, results}).
type Pagina[T any] struct {
	Count    int
	Next     string
	Previous string
	Results  []T
}
