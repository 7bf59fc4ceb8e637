package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

func TestXLSXWriterWrite(t *testing.T) {
	set := models.ReportSet{
		Inbound:  models.Report{Direction: models.DirectionInbound, Records: []models.TransactionRecord{}},
		Outbound: sampleReport(),
		Diagnostics: models.Diagnostics{
			Unclassified:  2,
			CatalogMisses: 1,
		},
	}

	var buf bytes.Buffer
	w := &XLSXWriter{}
	require.NoError(t, w.Write(&buf, set))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Entradas", "Saídas", "Resumo"}, f.GetSheetList())

	// Header row on the outbound sheet.
	got, err := f.GetCellValue("Saídas", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Número NF", got)

	// First data row.
	doc, err := f.GetCellValue("Saídas", "A2")
	require.NoError(t, err)
	assert.Equal(t, "12345", doc)

	item, err := f.GetCellValue("Saídas", "D2")
	require.NoError(t, err)
	assert.Equal(t, "177", item)

	pis, err := f.GetCellValue("Saídas", "I2")
	require.NoError(t, err)
	assert.Equal(t, "4.22", pis)

	// Summary sheet carries the diagnostics counters.
	label, err := f.GetCellValue("Resumo", "A9")
	require.NoError(t, err)
	assert.Equal(t, "Linhas não classificadas", label)
	value, err := f.GetCellValue("Resumo", "B9")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestXLSXWriterEmptySet(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	require.NoError(t, w.Write(&buf, models.ReportSet{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Entradas", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Número NF", got)
}
