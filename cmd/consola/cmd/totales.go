package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
	"github.com/jhoicas/libreria-facturacion/internal/domain/facturacion"
)

var (
	totImportes  []string
	totDescuento string
	totIVA       string
	totRecargo   string
	totEnvio     string
)

var totalesCmd = &cobra.Command{
	Use:   "totales",
	Short: "Calcular el desglose de una factura sin conectar con la API",
	Long: `Aplica descuento general, IVA, recargo de equivalencia y gastos de envío
sobre la suma de importes, con el mismo cálculo que las facturas.

  consola totales -i 10 -i 20 --descuento 10 --iva 21 --recargo 5.2 --envio 5`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := peticionTotales()
		if err != nil {
			return err
		}
		t := facturacion.CalcularTotales(req.Importes, req.Parametros()).Redondeados()
		if outputFormat == "json" {
			return imprimirJSON(cmd.OutOrStdout(), t)
		}
		imprimirTotales(cmd.OutOrStdout(), t, req)
		return nil
	},
}

func init() {
	f := totalesCmd.Flags()
	f.StringSliceVarP(&totImportes, "importe", "i", nil, "Importe de una línea (repetible)")
	f.StringVar(&totDescuento, "descuento", "0", "Descuento general %")
	f.StringVar(&totIVA, "iva", "0", "IVA %")
	f.StringVar(&totRecargo, "recargo", "0", "Recargo de equivalencia %")
	f.StringVar(&totEnvio, "envio", "0", "Gastos de envío")
	rootCmd.AddCommand(totalesCmd)
}

func peticionTotales() (dto.CalcularTotalesRequest, error) {
	var req dto.CalcularTotalesRequest
	for _, s := range totImportes {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return req, fmt.Errorf("importe inválido %q", s)
		}
		req.Importes = append(req.Importes, d)
	}
	campos := []struct {
		nombre string
		valor  string
		dst    *decimal.Decimal
	}{
		{"descuento", totDescuento, &req.Descuento},
		{"iva", totIVA, &req.IVA},
		{"recargo", totRecargo, &req.Recargo},
		{"envio", totEnvio, &req.GastosEnvio},
	}
	for _, c := range campos {
		d, err := decimal.NewFromString(c.valor)
		if err != nil {
			return req, fmt.Errorf("%s inválido %q", c.nombre, c.valor)
		}
		*c.dst = d
	}
	return req, nil
}

func imprimirTotales(w io.Writer, t facturacion.Totales, p dto.CalcularTotalesRequest) {
	tw := tabla(w)
	fmt.Fprintf(tw, "Suma y sigue\t%s\n", importe(t.SumaYSigue))
	fmt.Fprintf(tw, "Descuento (%s)\t-%s\n", porcentaje(p.Descuento), importe(t.ImporteDescuento))
	fmt.Fprintf(tw, "Base imponible\t%s\n", importe(t.BaseIVA))
	fmt.Fprintf(tw, "IVA (%s)\t%s\n", porcentaje(p.IVA), importe(t.ImporteIVA))
	fmt.Fprintf(tw, "Subtotal\t%s\n", importe(t.Subtotal))
	fmt.Fprintf(tw, "Recargo (%s)\t%s\n", porcentaje(p.Recargo), importe(t.ImporteRecargo))
	fmt.Fprintf(tw, "Gastos de envío\t%s\n", importe(t.GastosEnvio))
	fmt.Fprintf(tw, "TOTAL\t%s\n", importe(t.Total))
	_ = tw.Flush()
}
