package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/libreria-facturacion/internal/bootstrap"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
	"github.com/jhoicas/libreria-facturacion/pkg/config"
	"github.com/jhoicas/libreria-facturacion/pkg/jwt"
	"github.com/jhoicas/libreria-facturacion/pkg/logger"
)

var (
	version = "1.0.0"

	// Flags globales
	token        string
	outputFormat string
	verbose      bool

	// Estado cargado en PersistentPreRunE
	cfg      *config.Config
	acciones *bootstrap.Acciones
	usuario  entity.Usuario
)

// offline marca comandos que no necesitan la API remota ni sesión.
const offline = "offline"

var rootCmd = &cobra.Command{
	Use:   "consola",
	Short: "Consola de inventario y facturación de la librería",
	Long: `Consola para consultar el inventario de libros y gestionar facturas
contra la API REST de la librería.

Ejemplos:
  # Listar libros que contienen "bohemia"
  consola libros listar --titulo bohemia

  # Ver una factura con su desglose
  consola facturas ver 42 --token $LIBRERIA_TOKEN

  # Anular una factura emitida
  consola facturas anular 42 --motivo "Datos del cliente erróneos"

  # Calcular totales sin API
  consola totales -i 10 -i 20 --descuento 10 --iva 21`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: preparar,
	PersistentPostRun: func(*cobra.Command, []string) {
		if acciones != nil {
			_ = acciones.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Token de sesión (env: LIBRERIA_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "tabla", "Formato de salida (tabla, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Registro detallado en stderr")
}

func preparar(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[offline] == "true" {
		return nil
	}
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	nivel := "warn"
	if verbose {
		nivel = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: nivel, Service: "consola", Out: os.Stderr})

	if token == "" {
		token = os.Getenv("LIBRERIA_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("sesión requerida: use --token o LIBRERIA_TOKEN")
	}
	s, err := jwt.Parse(cfg.Session.JWTSecret, cfg.Session.Issuer, token)
	if err != nil {
		return fmt.Errorf("token de sesión inválido: %w", err)
	}
	usuario = entity.Usuario{ID: s.UserID, Email: s.Email, Nombre: s.Nombre}

	acciones, err = bootstrap.Nuevas(ctx(cmd), cfg, log.Zerolog())
	return err
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
