package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreria-facturacion/internal/bootstrap"
	"github.com/jhoicas/libreria-facturacion/pkg/config"
)

func cfgBase() *config.Config {
	return &config.Config{
		API:   config.APIConfig{URL: "http://127.0.0.1:1/api", Timeout: time.Second},
		Cache: config.CacheConfig{Driver: "memory", TTL: time.Minute},
	}
}

func TestNuevas_Memoria(t *testing.T) {
	acc, err := bootstrap.Nuevas(context.Background(), cfgBase(), zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, acc.Libros)
	assert.NotNil(t, acc.Facturas)
	assert.NotNil(t, acc.Lineas)
	assert.NotNil(t, acc.Empresa)
	assert.NoError(t, acc.Close())
}

func TestNuevas_SinAPI(t *testing.T) {
	cfg := cfgBase()
	cfg.API.URL = ""
	_, err := bootstrap.Nuevas(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNuevas_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := cfgBase()
	cfg.Cache = config.CacheConfig{Driver: "redis", RedisURL: "redis://" + mr.Addr(), TTL: time.Minute}

	acc, err := bootstrap.Nuevas(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, acc.Close())

	cfg.Cache.RedisURL = "redis://127.0.0.1:1"
	_, err = bootstrap.Nuevas(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err, "redis inalcanzable")
}
