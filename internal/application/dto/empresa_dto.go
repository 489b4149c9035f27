package dto

import "time"

// GuardarEmpresaRequest body para PUT /api/empresa.
type GuardarEmpresaRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	NIF       string `json:"nif"`
	GIF       string `json:"gif"`
	IBAN      string `json:"iban"`
}

// EmpresaResponse perfil de la empresa en respuestas.
type EmpresaResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	NIF       string    `json:"nif"`
	GIF       string    `json:"gif"`
	IBAN      string    `json:"iban"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
