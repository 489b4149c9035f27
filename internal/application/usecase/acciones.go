package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/apirest"
)

const layoutFecha = "2006-01-02"

// Mensajes de validación que ve el usuario.
const (
	msgSinLineas     = "Debe añadir al menos una línea a la factura"
	msgMotivo        = "Debe especificar un motivo para la anulación"
	msgFechaPago     = "Debe indicar la fecha de pago"
	msgNoAutorizado  = "Sesión no válida, vuelva a iniciar sesión"
	msgNoEncontrado  = "El recurso solicitado no existe"
	msgFechaInvalida = "Fecha inválida, use el formato AAAA-MM-DD"
	msgInterno       = "Error inesperado, inténtelo de nuevo"
)

// fallo normaliza un error al formato {success:false, error} y lo registra.
// Los errores remotos llevan su mensaje estático; defecto cubre el resto.
func fallo(log zerolog.Logger, op string, err error, defecto string) dto.ActionResponse {
	tipo, msg := clasificar(err, defecto)
	ev := log.Warn()
	if tipo == dto.FalloRemoto || tipo == dto.FalloInterno {
		ev = log.Error()
	}
	ev.Err(err).Str("op", op).Str("tipo", string(tipo)).Msg(msg)
	return dto.Fallo(tipo, msg)
}

// Clasificar tipo de fallo y mensaje para el usuario de un error de lectura.
func Clasificar(err error) (dto.TipoFallo, string) {
	return clasificar(err, msgInterno)
}

func clasificar(err error, defecto string) (dto.TipoFallo, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return dto.FalloNoAutorizado, msgNoAutorizado
	case errors.Is(err, domain.ErrFacturaSinLineas):
		return dto.FalloValidacion, msgSinLineas
	case errors.Is(err, domain.ErrMotivoRequerido):
		return dto.FalloValidacion, msgMotivo
	case errors.Is(err, domain.ErrFechaPagoRequerida):
		return dto.FalloValidacion, msgFechaPago
	case errors.Is(err, domain.ErrInvalidInput):
		return dto.FalloValidacion, capitalizar(err.Error())
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrTransicionInvalida):
		return dto.FalloConflicto, capitalizar(err.Error())
	case errors.Is(err, domain.ErrNotFound):
		if m := apirest.MensajeUsuario(err); m != "" {
			return dto.FalloNoEncontrado, m
		}
		return dto.FalloNoEncontrado, msgNoEncontrado
	case errors.Is(err, domain.ErrRemote):
		if m := apirest.MensajeUsuario(err); m != "" {
			return dto.FalloRemoto, m
		}
		return dto.FalloRemoto, defecto
	}
	return dto.FalloInterno, defecto
}

func capitalizar(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// parseFecha interpreta AAAA-MM-DD; vacío devuelve hoy según now.
func parseFecha(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(layoutFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgFechaInvalida)
	}
	return t, nil
}

func fechaOpcional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(layoutFecha, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgFechaInvalida)
	}
	return &t, nil
}
