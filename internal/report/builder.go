// Package report partitions assembled transaction records into the
// inbound and outbound fiscal reports and computes their totals.
package report

import (
	"github.com/fiscalpoint/sped-report-converter/internal/models"
	"github.com/fiscalpoint/sped-report-converter/internal/parser"
)

// Build classifies each record by CFOP and splits the input into the two
// directional reports, preserving input order within each. Records whose
// CFOP classifies to neither direction are excluded from both reports and
// counted in the diagnostics. Classification is a true partition:
// inbound + outbound + unclassified always equals the input count.
func Build(result *parser.Result) models.ReportSet {
	set := models.ReportSet{
		Inbound:     models.Report{Direction: models.DirectionInbound, Records: []models.TransactionRecord{}},
		Outbound:    models.Report{Direction: models.DirectionOutbound, Records: []models.TransactionRecord{}},
		Diagnostics: result.Diagnostics,
	}

	for _, rec := range result.Records {
		direction, err := parser.Classify(rec.CFOP)
		rec.Direction = direction
		if err != nil {
			set.Diagnostics.Unclassified++
			continue
		}

		switch direction {
		case models.DirectionInbound:
			appendRecord(&set.Inbound, rec)
		case models.DirectionOutbound:
			appendRecord(&set.Outbound, rec)
		}
	}

	return set
}

func appendRecord(rep *models.Report, rec models.TransactionRecord) {
	rep.Records = append(rep.Records, rec)
	rep.Totals.Count++
	rep.Totals.PISTotal += rec.PISValue
	rep.Totals.COFINSTotal += rec.COFINSValue
	rep.Totals.GrandTotal += rec.Total
}
