package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Etiquetas de invalidación. Una mutación invalida todas las lecturas etiquetadas.
const (
	TagLibros        = "libros"
	TagFacturas      = "facturas"
	TagFactura       = "factura"
	TagLineasFactura = "lineas-factura"
	TagLineaFactura  = "linea-factura"
	TagEmpresa       = "empresa"
)

// TTL de las lecturas con revalidación explícita.
const (
	TTLFacturas     = 60 * time.Second
	TTLLineaFactura = 300 * time.Second
)

// Store caché de lecturas con invalidación por etiquetas.
// Las implementaciones son seguras para uso concurrente.
type Store interface {
	// Get devuelve el valor y true si existe y no ha caducado.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set guarda el valor asociado a las etiquetas. ttl <= 0 usa el TTL por defecto del store.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	// InvalidateTags elimina todas las entradas asociadas a cualquiera de las etiquetas
	// e incrementa su versión.
	InvalidateTags(ctx context.Context, tags ...string) error
	// Version devuelve un valor que cambia cada vez que se invalida alguna de las etiquetas.
	Version(ctx context.Context, tags ...string) (uint64, error)
}

// Leer devuelve el valor cacheado o ejecuta load y guarda su resultado.
// Un fallo del store se registra y no impide la lectura remota.
// Si alguna etiqueta se invalida mientras load está en curso, el resultado se devuelve
// pero no se guarda. Entre la comprobación de versión y el Set queda una ventana mínima;
// en el peor caso la entrada vive un TTL.
func Leer[T any](ctx context.Context, s Store, log zerolog.Logger, key string, ttl time.Duration, tags []string, load func(context.Context) (T, error)) (T, error) {
	var version uint64
	guardar := s != nil
	if s != nil {
		raw, ok, err := s.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida")
		} else if ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
			log.Warn().Str("key", key).Msg("cache: entrada corrupta, se ignora")
		}
		if version, err = s.Version(ctx, tags...); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache: versión no disponible, no se guardará")
			guardar = false
		}
	}

	v, err := load(ctx)
	if err != nil || !guardar {
		return v, err
	}

	if actual, err := s.Version(ctx, tags...); err != nil || actual != version {
		log.Debug().Str("key", key).Msg("cache: invalidada durante la carga, no se guarda")
		return v, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: serializar")
		return v, nil
	}
	if err := s.Set(ctx, key, raw, ttl, tags...); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
	}
	return v, nil
}

// Invalidar invalida las etiquetas registrando, sin propagar, cualquier error.
func Invalidar(ctx context.Context, s Store, log zerolog.Logger, tags ...string) {
	if s == nil || len(tags) == 0 {
		return
	}
	if err := s.InvalidateTags(ctx, tags...); err != nil {
		log.Warn().Err(err).Strs("tags", tags).Msg("cache: invalidación fallida")
	}
}

// Clave compone una clave estable a partir de sus partes.
func Clave(partes ...any) string {
	k := ""
	for i, p := range partes {
		if i > 0 {
			k += ":"
		}
		k += fmt.Sprint(p)
	}
	return k
}
