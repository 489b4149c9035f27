package dto

import "github.com/jhoicas/libreria-facturacion/internal/domain/repository"

// PageRequest paginación de listados (mismos parámetros que la API remota).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// DefaultPage aplica valores por defecto si Page/PageSize son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = repository.DefaultPageSize
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// PageResponse página de resultados en respuestas.
type PageResponse[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Results  []T    `json:"results"`
}

// TipoFallo clasifica un fallo para elegir el código HTTP; no viaja en el JSON.
type TipoFallo string

const (
	FalloValidacion   TipoFallo = "validacion"
	FalloConflicto    TipoFallo = "conflicto"
	FalloNoEncontrado TipoFallo = "no_encontrado"
	FalloNoAutorizado TipoFallo = "no_autorizado"
	FalloRemoto       TipoFallo = "remoto"
	FalloInterno      TipoFallo = "interno"
)

// ActionResponse resultado de una mutación: nunca propaga errores, solo un mensaje.
type ActionResponse struct {
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	Data    any       `json:"data,omitempty"`
	Tipo    TipoFallo `json:"-"`
}

// Ok construye una respuesta exitosa.
func Ok(data any) ActionResponse { return ActionResponse{Success: true, Data: data} }

// Fallo construye una respuesta fallida con mensaje para el usuario.
func Fallo(tipo TipoFallo, msg string) ActionResponse {
	return ActionResponse{Success: false, Error: msg, Tipo: tipo}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
