// seed_items genera un script SQL para cargar el catálogo de artículos de una empresa
// a partir de un CSV exportado desde Excel (Windows-1252).
//
// Uso: go run ./cmd/seed_items -gstin 29ABCDE1234F1Z5 [-utf8] [-out items.sql] catalogo.csv
//
// Columnas: sku, name, hsn_code, unit, category, gst_rate, sale_price,
// purchase_price, reorder_level. La primera fila es la cabecera.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/solar-epc-api/internal/domain/gst"
)

var columns = []string{
	"sku", "name", "hsn_code", "unit", "category",
	"gst_rate", "sale_price", "purchase_price", "reorder_level",
}

type itemRow struct {
	SKU, Name, HSN, Unit, Category string
	GSTRate, SalePrice, Purchase   decimal.Decimal
	ReorderLevel                   decimal.Decimal
}

func main() {
	gstin := flag.String("gstin", "", "GSTIN de la empresa dueña del catálogo")
	outPath := flag.String("out", "", "archivo de salida (vacío = stdout)")
	utf8 := flag.Bool("utf8", false, "el CSV ya está en UTF-8")
	flag.Parse()

	if *gstin == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_items -gstin <GSTIN> [-utf8] [-out items.sql] catalogo.csv")
		os.Exit(2)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if !*utf8 {
		in = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	}
	rows, rowErrs, err := parseItems(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, e := range rowErrs {
		fmt.Fprintf(os.Stderr, "omitido: %v\n", e)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := writeSQL(out, strings.ToUpper(*gstin), rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d artículos, %d filas omitidas\n", len(rows), len(rowErrs))
}

// parseItems lee el CSV. Las filas inválidas se devuelven como errores por fila y no
// detienen la carga; err solo se retorna si el archivo no se puede leer.
func parseItems(r io.Reader) ([]itemRow, []error, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	for _, c := range []string{"sku", "name", "unit"} {
		if _, ok := idx[c]; !ok {
			return nil, nil, fmt.Errorf("cabecera: falta la columna %q", c)
		}
	}

	var rows []itemRow
	var rowErrs []error
	seen := make(map[string]bool)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := itemRow{
			SKU:          field("sku"),
			Name:         field("name"),
			HSN:          field("hsn_code"),
			Unit:         field("unit"),
			Category:     field("category"),
			GSTRate:      gst.ParseAmount(field("gst_rate")),
			SalePrice:    gst.ParseAmount(field("sale_price")),
			Purchase:     gst.ParseAmount(field("purchase_price")),
			ReorderLevel: gst.ParseAmount(field("reorder_level")),
		}
		switch {
		case row.SKU == "" || row.Name == "" || row.Unit == "":
			rowErrs = append(rowErrs, fmt.Errorf("línea %d: sku, name y unit son obligatorios", line))
		case !gst.ValidRate(row.GSTRate):
			rowErrs = append(rowErrs, fmt.Errorf("línea %d: tasa GST %s no permitida", line, row.GSTRate))
		case seen[row.SKU]:
			rowErrs = append(rowErrs, fmt.Errorf("línea %d: sku %s repetido", line, row.SKU))
		default:
			seen[row.SKU] = true
			rows = append(rows, row)
		}
	}
	return rows, rowErrs, nil
}

// writeSQL un INSERT por artículo; re-ejecutar el script actualiza precios y tasas sin
// tocar el stock (que solo cambia por el libro mayor).
func writeSQL(w io.Writer, gstin string, rows []itemRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de artículos generado por seed_items\n")
	fmt.Fprintf(&b, "-- Empresa: %s\n\n", gstin)
	b.WriteString("BEGIN;\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "INSERT INTO items (id, company_id, sku, name, hsn_code, unit, category, gst_rate, sale_price, purchase_price, reorder_level)\n")
		fmt.Fprintf(&b, "SELECT gen_random_uuid(), id, '%s', '%s', '%s', '%s', '%s', %s, %s, %s, %s FROM companies WHERE gstin = '%s'\n",
			escapeSQL(r.SKU), escapeSQL(r.Name), escapeSQL(r.HSN), escapeSQL(r.Unit), escapeSQL(r.Category),
			r.GSTRate.String(), r.SalePrice.StringFixed(2), r.Purchase.String(), r.ReorderLevel.String(),
			escapeSQL(gstin))
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, hsn_code = EXCLUDED.hsn_code,\n")
		b.WriteString("  unit = EXCLUDED.unit, category = EXCLUDED.category, gst_rate = EXCLUDED.gst_rate,\n")
		b.WriteString("  sale_price = EXCLUDED.sale_price, purchase_price = EXCLUDED.purchase_price,\n")
		b.WriteString("  reorder_level = EXCLUDED.reorder_level, updated_at = now();\n")
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
