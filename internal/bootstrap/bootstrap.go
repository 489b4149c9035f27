// Package bootstrap arma cliente remoto, caché y acciones a partir de la configuración.
// Lo comparten el servidor HTTP y la consola.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/libreria-facturacion/internal/application/facturacion"
	"github.com/jhoicas/libreria-facturacion/internal/application/usecase"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/apirest"
	"github.com/jhoicas/libreria-facturacion/internal/infrastructure/cache"
	"github.com/jhoicas/libreria-facturacion/pkg/config"
)

// Acciones casos de uso listos para usar.
type Acciones struct {
	Libros   *usecase.LibroActions
	Facturas *usecase.FacturaActions
	Lineas   *usecase.LineaActions
	Empresa  *usecase.EmpresaActions

	// Close libera la conexión a Redis si se abrió.
	Close func() error
}

// Nuevas construye las acciones. Con CACHE_DRIVER=redis comprueba la conexión antes de devolver.
func Nuevas(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Acciones, error) {
	if cfg.API.URL == "" {
		return nil, fmt.Errorf("bootstrap: API_URL no configurada")
	}
	client := apirest.New(apirest.Options{
		BaseURL: cfg.API.URL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout,
		Logger:  log.With().Str("component", "apirest").Logger(),
	})

	store, closeFn, err := nuevoStore(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	libros := client.Libros()
	return &Acciones{
		Libros:   usecase.NewLibroActions(libros, store, log, cfg.Cache.TTL),
		Facturas: usecase.NewFacturaActions(client.Facturas(), client.Lineas(), facturacion.CatalogoRemoto{Libros: libros}, store, log, cfg.Cache.TTL),
		Lineas:   usecase.NewLineaActions(client.Lineas(), client.Facturas(), libros, store, log),
		Empresa:  usecase.NewEmpresaActions(client.Empresa(), store, log, cfg.Cache.TTL),
		Close:    closeFn,
	}, nil
}

func nuevoStore(ctx context.Context, c config.CacheConfig) (cache.Store, func() error, error) {
	if c.Driver != "redis" {
		return cache.NewMemoryStore(c.TTL), func() error { return nil }, nil
	}
	rdb, err := cache.NewRedis(ctx, c.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: redis: %w", err)
	}
	return cache.NewRedisStore(rdb, "libreria:", c.TTL), rdb.Close, nil
}
