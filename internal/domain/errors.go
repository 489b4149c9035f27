package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
	ErrFacturaSinLineas   = errors.New("debe añadir al menos una línea a la factura")
	ErrMotivoRequerido    = errors.New("debe especificar un motivo para la anulación")
	ErrFechaPagoRequerida = errors.New("una factura pagada debe tener fecha de pago")
	ErrRemote             = errors.New("error en la API remota")
)
