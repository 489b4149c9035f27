package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

var (
	factEstado  string
	factCliente string
	factDesde   string
	factHasta   string
	factPage    int
	factMotivo  string
	factFecha   string
	pdfSalida   string
	pdfIBAN     bool
)

var facturasCmd = &cobra.Command{
	Use:   "facturas",
	Short: "Consultar y tramitar facturas",
}

var facturasListarCmd = &cobra.Command{
	Use:   "listar",
	Short: "Listar facturas con filtros",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := dto.FacturaListRequest{Estado: factEstado, Cliente: factCliente, FechaDesde: factDesde, FechaHasta: factHasta}
		req.Page = factPage
		p, err := acciones.Facturas.Listar(ctx(cmd), usuario, req)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return imprimirJSON(cmd.OutOrStdout(), p)
		}
		w := tabla(cmd.OutOrStdout())
		fmt.Fprintln(w, "ID\tNÚMERO\tFECHA\tCLIENTE\tESTADO\tTOTAL")
		for _, f := range p.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", f.ID, numero(f), f.Fecha, f.Nombre, f.Estado, importe(f.Total))
		}
		_ = w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\nPágina %d · %d facturas\n", p.Page, p.Count)
		return nil
	},
}

var facturasVerCmd = &cobra.Command{
	Use:   "ver <id>",
	Short: "Detalle de una factura con líneas y desglose",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argID(args[0])
		if err != nil {
			return err
		}
		f, err := acciones.Facturas.Obtener(ctx(cmd), usuario, id)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return imprimirJSON(cmd.OutOrStdout(), f)
		}
		imprimirFactura(cmd.OutOrStdout(), f)
		return nil
	},
}

var facturasEmitirCmd = &cobra.Command{
	Use:   "emitir <id>",
	Short: "Emitir un borrador",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argID(args[0])
		if err != nil {
			return err
		}
		return resultado(cmd.OutOrStdout(), acciones.Facturas.Emitir(ctx(cmd), usuario, id), "Factura emitida")
	},
}

var facturasAnularCmd = &cobra.Command{
	Use:   "anular <id> --motivo <texto>",
	Short: "Anular una factura emitida",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argID(args[0])
		if err != nil {
			return err
		}
		return resultado(cmd.OutOrStdout(), acciones.Facturas.Anular(ctx(cmd), usuario, id, factMotivo), "Factura anulada")
	},
}

var facturasPagarCmd = &cobra.Command{
	Use:   "pagar <id>",
	Short: "Marcar una factura emitida como pagada",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argID(args[0])
		if err != nil {
			return err
		}
		return resultado(cmd.OutOrStdout(), acciones.Facturas.MarcarPagada(ctx(cmd), usuario, id, factFecha), "Factura pagada")
	},
}

var facturasPDFCmd = &cobra.Command{
	Use:   "pdf <id>",
	Short: "Descargar el PDF de una factura",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argID(args[0])
		if err != nil {
			return err
		}
		pdf, err := acciones.Facturas.DescargarPDF(ctx(cmd), usuario, id, pdfIBAN)
		if err != nil {
			return err
		}
		salida := pdfSalida
		if salida == "" {
			salida = fmt.Sprintf("factura-%d.pdf", id)
		}
		if err := os.WriteFile(salida, pdf, 0o644); err != nil {
			return fmt.Errorf("guardar PDF: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Guardado %s (%d bytes)\n", salida, len(pdf))
		return nil
	},
}

func init() {
	f := facturasListarCmd.Flags()
	f.StringVar(&factEstado, "estado", "", "borrador, emitida, pagada o anulada")
	f.StringVar(&factCliente, "cliente", "", "Cliente (contiene)")
	f.StringVar(&factDesde, "desde", "", "Fecha inicial AAAA-MM-DD")
	f.StringVar(&factHasta, "hasta", "", "Fecha final AAAA-MM-DD")
	f.IntVar(&factPage, "page", 1, "Página")

	facturasAnularCmd.Flags().StringVar(&factMotivo, "motivo", "", "Motivo de la anulación (obligatorio)")
	facturasPagarCmd.Flags().StringVar(&factFecha, "fecha", "", "Fecha de pago AAAA-MM-DD (por defecto hoy)")
	facturasPDFCmd.Flags().StringVarP(&pdfSalida, "output", "o", "", "Archivo de salida")
	facturasPDFCmd.Flags().BoolVar(&pdfIBAN, "iban", false, "Incluir el IBAN de la empresa")

	facturasCmd.AddCommand(facturasListarCmd, facturasVerCmd, facturasEmitirCmd, facturasAnularCmd, facturasPagarCmd, facturasPDFCmd)
	rootCmd.AddCommand(facturasCmd)
}

func argID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}

func numero(f dto.FacturaResponse) string {
	if f.Numero != "" {
		return f.Numero
	}
	if f.NumeroBorrador != "" {
		return f.NumeroBorrador
	}
	return "(borrador)"
}

func imprimirFactura(w io.Writer, f *dto.FacturaResponse) {
	fmt.Fprintf(w, "Factura %s · %s · %s\n", numero(*f), f.Fecha, f.Estado)
	fmt.Fprintf(w, "Cliente: %s (%s) NIF %s\n", f.Nombre, f.Cliente, f.NIF)
	if f.MotivoAnulacion != "" {
		fmt.Fprintf(w, "Motivo de anulación: %s\n", f.MotivoAnulacion)
	}
	if f.FechaPago != "" {
		fmt.Fprintf(w, "Pagada el %s\n", f.FechaPago)
	}
	fmt.Fprintln(w)

	t := tabla(w)
	fmt.Fprintln(t, "LIBRO\tCANT.\tPRECIO\tIMPORTE")
	for _, l := range f.Lineas {
		fmt.Fprintf(t, "%s\t%d\t%s\t%s\n", l.LibroTitulo, l.Cantidad, importe(l.Precio), importe(l.Importe))
	}
	_ = t.Flush()

	if f.Totales != nil {
		fmt.Fprintln(w)
		imprimirTotales(w, *f.Totales, dto.CalcularTotalesRequest{
			Descuento: f.Descuento, IVA: f.IVA, Recargo: f.Recargo, GastosEnvio: f.GastosEnvio,
		})
	}
}
