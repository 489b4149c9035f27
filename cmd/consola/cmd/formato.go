package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

var printer = message.NewPrinter(language.Spanish)

// importe formatea con separadores del español: 1234.5 -> "1.234,50 €".
func importe(d decimal.Decimal) string {
	return printer.Sprintf("%.2f €", d.Round(2).InexactFloat64())
}

// porcentaje 21 -> "21 %", 5.2 -> "5,2 %".
func porcentaje(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d %%", d.IntPart())
	}
	return printer.Sprintf("%v %%", d.InexactFloat64())
}

func tabla(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func imprimirJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resultado imprime una acción; un fallo se devuelve como error para el código de salida.
func resultado(w io.Writer, res dto.ActionResponse, ok string) error {
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	if outputFormat == "json" {
		return imprimirJSON(w, res)
	}
	fmt.Fprintln(w, ok)
	return nil
}
