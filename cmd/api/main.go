package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/libreria-facturacion/internal/bootstrap"
	httpRouter "github.com/jhoicas/libreria-facturacion/internal/interfaces/http"
	"github.com/jhoicas/libreria-facturacion/pkg/config"
	"github.com/jhoicas/libreria-facturacion/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.URL).
		Str("cache", cfg.Cache.Driver).
		Msg("iniciando aplicación")

	if cfg.Session.JWTSecret == "" {
		log.Fatal().Msg("SESSION_JWT_SECRET requerido")
	}

	ctx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	acciones, err := bootstrap.Nuevas(ctx, cfg, log.Zerolog())
	cancelBoot()
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización")
	}
	defer func() {
		if err := acciones.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar caché")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Librería · Facturación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Libros:    acciones.Libros,
		Facturas:  acciones.Facturas,
		Lineas:    acciones.Lineas,
		Empresa:   acciones.Empresa,
		JWTSecret: cfg.Session.JWTSecret,
		JWTIssuer: cfg.Session.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
