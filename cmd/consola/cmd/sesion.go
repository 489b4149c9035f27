package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/libreria-facturacion/pkg/config"
	"github.com/jhoicas/libreria-facturacion/pkg/jwt"
)

var (
	sesionUsuario string
	sesionEmail   string
)

// sesionCmd emite un token firmado con SESSION_JWT_SECRET. En producción los tokens
// los emite el proveedor de identidad; esto es para entornos de desarrollo.
var sesionCmd = &cobra.Command{
	Use:         "sesion",
	Short:       "Emitir un token de sesión de desarrollo",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if c.App.Env == "production" {
			return fmt.Errorf("sesion no está disponible con APP_ENV=production")
		}
		tok, err := jwt.Generate(c.Session.JWTSecret, c.Session.Issuer,
			jwt.Sesion{UserID: sesionUsuario, Email: sesionEmail}, c.Session.Expiration)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	sesionCmd.Flags().StringVar(&sesionUsuario, "usuario", "dev", "Id de usuario")
	sesionCmd.Flags().StringVar(&sesionEmail, "email", "", "Email")
	rootCmd.AddCommand(sesionCmd)
}
