package cmd

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/libreria-facturacion/internal/application/dto"
)

// leerLibrosCSV interpreta un catálogo con cabecera. Columnas reconocidas (cualquier orden):
// titulo (obligatoria), precio, pvp, descuento, cantidad. Acepta coma decimal y punto de miles.
// Un importe ausente queda nulo para no pisar el guardado al actualizar.
func leerLibrosCSV(r io.Reader, latin1 bool) ([]dto.ImportarLibroRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	br := bufio.NewReader(r)
	primera, err := br.Peek(1024)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	cr := csv.NewReader(br)
	cr.Comma = separador(primera)
	cr.TrimLeadingSpace = true

	cabecera, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	col := map[string]int{}
	for i, h := range cabecera {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := col["titulo"]; !ok {
		return nil, fmt.Errorf("falta la columna titulo")
	}

	var out []dto.ImportarLibroRequest
	for fila := 2; ; fila++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", fila, err)
		}
		campo := func(nombre string) string {
			i, ok := col[nombre]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		l := dto.ImportarLibroRequest{Titulo: campo("titulo")}
		if l.Titulo == "" {
			continue
		}
		for _, c := range []struct {
			nombre string
			dst    **decimal.Decimal
		}{{"precio", &l.Precio}, {"pvp", &l.PVP}, {"descuento", &l.Descuento}} {
			if v := campo(c.nombre); v != "" {
				d, err := decimalES(v)
				if err != nil {
					return nil, fmt.Errorf("fila %d: %s inválido %q", fila, c.nombre, v)
				}
				*c.dst = &d
			}
		}
		if v := campo("cantidad"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("fila %d: cantidad inválida %q", fila, v)
			}
			l.Cantidad = n
		}
		out = append(out, l)
	}
	return out, nil
}

// separador ';' si la primera línea lo usa (Excel en español), si no ','.
func separador(inicio []byte) rune {
	linea, _, _ := bytes.Cut(inicio, []byte("\n"))
	if bytes.Count(linea, []byte(";")) > bytes.Count(linea, []byte(",")) {
		return ';'
	}
	return ','
}

// decimalES admite "9.50", "9,50", "1.234,50" y "1,234.50": el último separador es el decimal.
func decimalES(v string) (decimal.Decimal, error) {
	coma, punto := strings.LastIndex(v, ","), strings.LastIndex(v, ".")
	switch {
	case coma > punto:
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	case coma >= 0:
		v = strings.ReplaceAll(v, ",", "")
	}
	return decimal.NewFromString(v)
}
