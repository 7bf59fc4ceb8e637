package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

const (
	sheetInbound  = "Entradas"
	sheetOutbound = "Saídas"
	sheetSummary  = "Resumo"
)

// XLSXWriter writes a full report set as one workbook: a sheet per
// direction plus a summary sheet with the aggregate totals. Monetary
// cells are written as numbers so the spreadsheet stays usable for
// further analysis.
type XLSXWriter struct{}

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, set models.ReportSet) error {
	f, err := w.build(set)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, set models.ReportSet) error {
	f, err := w.build(set)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(set models.ReportSet) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", sheetInbound)
	if _, err := f.NewSheet(sheetOutbound); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeReportSheet(f, sheetInbound, set.Inbound); err != nil {
		return nil, err
	}
	if err := writeReportSheet(f, sheetOutbound, set.Outbound); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, set); err != nil {
		return nil, err
	}

	return f, nil
}

func writeReportSheet(f *excelize.File, sheet string, rep models.Report) error {
	for col, title := range csvHeader {
		if err := setCell(f, sheet, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, rec := range rep.Records {
		row := i + 2
		values := []interface{}{
			rec.DocNumber,
			rec.AccessKey,
			FormatDate(rec.IssueDate),
			rec.ItemCode,
			rec.Description,
			rec.NCM,
			rec.CFOP,
			rec.PISBase,
			rec.PISValue,
			rec.COFINSBase,
			rec.COFINSValue,
			rec.Total,
		}
		for col, v := range values {
			if err := setCell(f, sheet, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "L", 18); err != nil {
		return fmt.Errorf("failed to size columns on %q: %w", sheet, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, set models.ReportSet) error {
	rows := []struct {
		label string
		value interface{}
	}{
		{"Entradas - Quantidade", set.Inbound.Totals.Count},
		{"Entradas - Total PIS", set.Inbound.Totals.PISTotal},
		{"Entradas - Total COFINS", set.Inbound.Totals.COFINSTotal},
		{"Entradas - Total Geral", set.Inbound.Totals.GrandTotal},
		{"Saídas - Quantidade", set.Outbound.Totals.Count},
		{"Saídas - Total PIS", set.Outbound.Totals.PISTotal},
		{"Saídas - Total COFINS", set.Outbound.Totals.COFINSTotal},
		{"Saídas - Total Geral", set.Outbound.Totals.GrandTotal},
		{"Linhas não classificadas", set.Diagnostics.Unclassified},
		{"Linhas malformadas", set.Diagnostics.MalformedLines},
		{"Produtos sem cadastro", set.Diagnostics.CatalogMisses},
	}

	for i, r := range rows {
		if err := setCell(f, sheetSummary, 1, i+1, r.label); err != nil {
			return err
		}
		if err := setCell(f, sheetSummary, 2, i+1, r.value); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetSummary, "A", "B", 28); err != nil {
		return fmt.Errorf("failed to size columns on %q: %w", sheetSummary, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("bad cell coordinates (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}
