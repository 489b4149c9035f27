package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain/entity"
)

var (
	librosTitulo   string
	librosPage     int
	librosPageSize int
)

var librosCmd = &cobra.Command{
	Use:   "libros",
	Short: "Inventario de libros",
}

var librosListarCmd = &cobra.Command{
	Use:   "listar",
	Short: "Listar libros con su stock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := dto.LibroListRequest{Titulo: librosTitulo}
		req.Page, req.PageSize = librosPage, librosPageSize
		p, err := acciones.Libros.Listar(ctx(cmd), usuario, req)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return imprimirJSON(cmd.OutOrStdout(), p)
		}
		imprimirLibros(cmd, p.Results)
		fmt.Fprintf(cmd.OutOrStdout(), "\nPágina %d · %d libros en total\n", p.Page, p.Count)
		return nil
	},
}

var librosBuscarCmd = &cobra.Command{
	Use:   "buscar <texto>",
	Short: "Buscar libros por título sin distinguir tildes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		libros, err := acciones.Libros.Buscar(ctx(cmd), usuario, args[0])
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return imprimirJSON(cmd.OutOrStdout(), libros)
		}
		imprimirLibros(cmd, libros)
		return nil
	},
}

func init() {
	librosListarCmd.Flags().StringVar(&librosTitulo, "titulo", "", "Filtro por título (contiene)")
	librosListarCmd.Flags().IntVar(&librosPage, "page", 1, "Página")
	librosListarCmd.Flags().IntVar(&librosPageSize, "page-size", 10, "Libros por página")

	librosCmd.AddCommand(librosListarCmd, librosBuscarCmd, librosImportarCmd)
	rootCmd.AddCommand(librosCmd)
}

func imprimirLibros(cmd *cobra.Command, libros []dto.LibroResponse) {
	if len(libros) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Sin resultados")
		return
	}
	w := tabla(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tTÍTULO\tPRECIO\tPVP\tSTOCK")
	for _, l := range libros {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", l.ID, l.Titulo, importe(l.Precio), importe(l.PVP), l.Cantidad)
	}
	_ = w.Flush()
}

var (
	importarLatin1 bool
	importarDryRun bool
)

var librosImportarCmd = &cobra.Command{
	Use:   "importar <archivo.csv>",
	Short: "Crear o actualizar libros desde un CSV (titulo;precio;pvp;descuento;cantidad)",
	Long: `Lee un CSV separado por ';' o ',' con cabecera. Cada fila actualiza el libro con
el mismo título (sin distinguir tildes ni mayúsculas) o lo crea si no existe.
Las hojas exportadas desde Excel suelen venir en ISO-8859-1: use --latin1.

  consola libros importar catalogo.csv --latin1 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()

		libros, err := leerLibrosCSV(f, importarLatin1)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if importarDryRun {
			fmt.Fprintf(out, "%d libros válidos (no se ha creado ninguno)\n", len(libros))
			return nil
		}
		r := importarLibros(ctx(cmd), acciones.Libros, usuario, libros, cmd.ErrOrStderr())
		fmt.Fprintf(out, "Libros nuevos creados: %d\nLibros existentes actualizados: %d\nTotal procesados: %d\n",
			r.creados, r.actualizados, r.creados+r.actualizados)
		if r.fallos > 0 {
			return fmt.Errorf("%d libros no se pudieron importar", r.fallos)
		}
		return nil
	},
}

// importador crea o actualiza un libro por título.
type importador interface {
	Importar(ctx context.Context, u entity.Usuario, req dto.ImportarLibroRequest) (dto.ActionResponse, bool)
}

type resumenImportacion struct {
	creados, actualizados, fallos int
}

// importarLibros procesa las filas en orden; un fallo se informa y no detiene el resto.
func importarLibros(ctx context.Context, imp importador, u entity.Usuario, filas []dto.ImportarLibroRequest, errOut io.Writer) resumenImportacion {
	var r resumenImportacion
	for _, l := range filas {
		res, creado := imp.Importar(ctx, u, l)
		switch {
		case !res.Success:
			r.fallos++
			fmt.Fprintf(errOut, "«%s»: %s\n", l.Titulo, res.Error)
		case creado:
			r.creados++
		default:
			r.actualizados++
		}
	}
	return r
}

func init() {
	librosImportarCmd.Flags().BoolVar(&importarLatin1, "latin1", false, "El archivo está en ISO-8859-1")
	librosImportarCmd.Flags().BoolVar(&importarDryRun, "dry-run", false, "Solo validar el archivo")
}
