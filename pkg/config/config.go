package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig API REST remota que persiste libros, facturas y empresa.
type APIConfig struct {
	URL     string // base, p. ej. https://api.libreria.es/api
	Key     string // cabecera X-API-Key
	Timeout time.Duration
}

// SessionConfig verificación del token de sesión emitido por el proveedor de identidad.
type SessionConfig struct {
	JWTSecret  string
	Issuer     string
	Expiration int // minutos, solo para tokens emitidos por la consola en desarrollo
}

// CacheConfig caché de lecturas.
type CacheConfig struct {
	Driver   string // memory | redis
	RedisURL string
	TTL      time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, SESSION_JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	apiURL := getString(v, "API_URL", "")
	if apiURL == "" {
		apiURL = getString(v, "NEXT_PUBLIC_API_URL", "")
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		API: APIConfig{
			URL:     strings.TrimRight(apiURL, "/"),
			Key:     getString(v, "API_KEY", ""),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			JWTSecret:  getString(v, "SESSION_JWT_SECRET", ""),
			Issuer:     v.GetString("SESSION_JWT_ISSUER"),
			Expiration: getInt(v, "SESSION_JWT_EXPIRATION_MINUTES", 60),
		},
		Cache: CacheConfig{
			Driver:   strings.ToLower(v.GetString("CACHE_DRIVER")),
			RedisURL: getString(v, "REDIS_URL", ""),
			TTL:      time.Duration(getInt(v, "CACHE_TTL_SECONDS", 60)) * time.Second,
		},
	}

	if cfg.Cache.Driver != "memory" && cfg.Cache.Driver != "redis" {
		return nil, fmt.Errorf("config: CACHE_DRIVER desconocido %q (memory|redis)", cfg.Cache.Driver)
	}
	if cfg.Cache.Driver == "redis" && cfg.Cache.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL requerido con CACHE_DRIVER=redis")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "libreria-facturacion")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("SESSION_JWT_ISSUER", "libreria")
	v.SetDefault("CACHE_DRIVER", "memory")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
