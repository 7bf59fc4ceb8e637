// Package writer renders finished reports as CSV and XLSX files for the
// analysts who consume them.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

// csvHeader matches the column layout analysts see in the result tables.
var csvHeader = []string{
	"Número NF", "Chave de Acesso", "Data Emissão", "Cód. Produto",
	"Produto", "NCM", "CFOP", "Base PIS", "Valor PIS",
	"Base COFINS", "Valor COFINS", "Total",
}

// CSVWriter writes one directional report to CSV, with monetary columns
// rendered in the Brazilian convention ("R$ 1.234,56").
type CSVWriter struct {
	// IncludeBOM prepends a UTF-8 byte order mark so Excel opens the
	// accented product descriptions correctly.
	IncludeBOM bool
}

// WriteToFile writes the report as CSV to the given path.
func (w *CSVWriter) WriteToFile(path string, rep models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rep)
}

// Write writes the report as CSV to the given writer.
func (w *CSVWriter) Write(out io.Writer, rep models.Report) error {
	if w.IncludeBOM {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range rep.Records {
		row := []string{
			rec.DocNumber,
			rec.AccessKey,
			FormatDate(rec.IssueDate),
			rec.ItemCode,
			rec.Description,
			rec.NCM,
			rec.CFOP,
			FormatBRL(rec.PISBase),
			FormatBRL(rec.PISValue),
			FormatBRL(rec.COFINSBase),
			FormatBRL(rec.COFINSValue),
			FormatBRL(rec.Total),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatBRL renders a value in the Brazilian currency convention:
// "R$ 1.234,56", dot for thousands, comma for decimals.
func FormatBRL(v float64) string {
	return "R$ " + formatNumberBR(v)
}

func formatNumberBR(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, decPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + decPart
	if neg {
		return "-" + out
	}
	return out
}

// FormatDate renders an issue date as dd/mm/yyyy. A zero date (the
// substitute for an unparseable one) renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
