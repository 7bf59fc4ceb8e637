package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
	"github.com/fiscalpoint/sped-report-converter/internal/parser"
)

func record(cfop string, pis, cofins float64) models.TransactionRecord {
	return models.TransactionRecord{
		CFOP:        cfop,
		PISValue:    pis,
		COFINSValue: cofins,
		Total:       pis + cofins,
	}
}

func TestBuildPartitionsByDirection(t *testing.T) {
	result := &parser.Result{
		Records: []models.TransactionRecord{
			record("1102", 1.10, 5.10),
			record("5102", 4.22, 19.48),
			record("2102", 0, 0),
			record("6108", 2.00, 9.20),
		},
	}

	set := Build(result)

	require.Len(t, set.Inbound.Records, 2)
	require.Len(t, set.Outbound.Records, 2)

	for _, rec := range set.Inbound.Records {
		assert.Equal(t, models.DirectionInbound, rec.Direction)
	}
	for _, rec := range set.Outbound.Records {
		assert.Equal(t, models.DirectionOutbound, rec.Direction)
	}

	// Input order is preserved within each direction.
	assert.Equal(t, "1102", set.Inbound.Records[0].CFOP)
	assert.Equal(t, "2102", set.Inbound.Records[1].CFOP)
	assert.Equal(t, "5102", set.Outbound.Records[0].CFOP)
	assert.Equal(t, "6108", set.Outbound.Records[1].CFOP)
}

func TestBuildTotals(t *testing.T) {
	result := &parser.Result{
		Records: []models.TransactionRecord{
			record("5102", 4.22, 19.48),
			record("6102", 1.00, 2.00),
			record("1102", 0.50, 2.30),
		},
	}

	set := Build(result)

	assert.Equal(t, 2, set.Outbound.Totals.Count)
	assert.InDelta(t, 5.22, set.Outbound.Totals.PISTotal, 1e-9)
	assert.InDelta(t, 21.48, set.Outbound.Totals.COFINSTotal, 1e-9)
	assert.InDelta(t, 26.70, set.Outbound.Totals.GrandTotal, 1e-9)

	assert.Equal(t, 1, set.Inbound.Totals.Count)
	assert.InDelta(t, 0.50, set.Inbound.Totals.PISTotal, 1e-9)
	assert.InDelta(t, 2.30, set.Inbound.Totals.COFINSTotal, 1e-9)
}

func TestBuildCountsUnclassified(t *testing.T) {
	result := &parser.Result{
		Records: []models.TransactionRecord{
			record("4102", 1.00, 1.00), // leading digit 4 maps to neither side
			record("5102", 1.00, 1.00),
		},
		Diagnostics: models.Diagnostics{MalformedLines: 3},
	}

	set := Build(result)

	assert.Len(t, set.Inbound.Records, 0)
	assert.Len(t, set.Outbound.Records, 1)
	assert.Equal(t, 1, set.Diagnostics.Unclassified)
	// Parser diagnostics ride along untouched.
	assert.Equal(t, 3, set.Diagnostics.MalformedLines)
}

// Classification is a true partition: every record lands in exactly one
// of inbound, outbound or the unclassified bucket, and the PIS sums
// respect it.
func TestBuildPartitionProperty(t *testing.T) {
	records := []models.TransactionRecord{
		record("1102", 1, 0), record("2550", 2, 0), record("3102", 3, 0),
		record("4102", 4, 0), record("5102", 5, 0), record("6102", 6, 0),
		record("7102", 7, 0), record("9900", 8, 0), record("", 9, 0),
	}
	result := &parser.Result{Records: records}

	set := Build(result)

	total := len(set.Inbound.Records) + len(set.Outbound.Records) + set.Diagnostics.Unclassified
	assert.Equal(t, len(records), total)

	var classifiedPIS float64
	for _, rec := range records {
		if d, err := parser.Classify(rec.CFOP); err == nil && d != models.DirectionUnknown {
			classifiedPIS += rec.PISValue
		}
	}
	assert.InDelta(t, classifiedPIS, set.Inbound.Totals.PISTotal+set.Outbound.Totals.PISTotal, 1e-9)
}

func TestBuildEmptyInput(t *testing.T) {
	set := Build(&parser.Result{})

	assert.NotNil(t, set.Inbound.Records)
	assert.NotNil(t, set.Outbound.Records)
	assert.Equal(t, 0, set.Inbound.Totals.Count)
	assert.Equal(t, 0, set.Outbound.Totals.Count)
}
