package parser

import "github.com/fiscalpoint/sped-report-converter/internal/models"

// Record types consumed by this pipeline. Everything else in the file is
// passed over without inspection.
const (
	RecordProduct   = "0200" // product catalog
	RecordDocHeader = "C100" // fiscal document header
	RecordDocItem   = "C170" // fiscal document item line
)

// Field positions per record type. These are a fixed contract with the
// EFD-Contribuições layout (positions count from the raw split, record
// type at 1) and must never be inferred from the data.
const (
	posProductCode = 2
	posProductDesc = 3
	posProductNCM  = 8

	posHeaderDocNumber = 8
	posHeaderAccessKey = 9
	posHeaderIssueDate = 10

	posItemCode       = 3
	posItemCFOP       = 11
	posItemCSTPIS     = 25
	posItemPISBase    = 26
	posItemPISRate    = 27
	posItemPISValue   = 30
	posItemCSTCOFINS  = 31
	posItemCOFINSBase = 32
	posItemCOFINSRate = 33
	posItemCOFINSVal  = 36
)

// headerRecord is a typed view of a C100 line. The issue date is kept raw
// here; the assembler decides how to handle an unparseable one.
type headerRecord struct {
	DocNumber    string
	AccessKey    string
	IssueDateRaw string
}

// itemRecord is a typed view of a C170 line, still with the monetary
// fields as text. Mapping positions to names once at parse time keeps a
// wrong-column bug detectable by a single test instead of surfacing as a
// silently wrong report.
type itemRecord struct {
	ItemCode string
	CFOP     string

	CSTPIS       string
	PISBaseRaw   string
	PISRateRaw   string
	PISValueRaw  string
	CSTCOFINS    string
	COFINSBase   string
	COFINSRate   string
	COFINSValRaw string
}

func parseProduct(l Line) models.ProductEntry {
	return models.ProductEntry{
		Code:        l.Field(posProductCode),
		Description: l.Field(posProductDesc),
		NCM:         l.Field(posProductNCM),
	}
}

func parseHeader(l Line) headerRecord {
	return headerRecord{
		DocNumber:    l.Field(posHeaderDocNumber),
		AccessKey:    l.Field(posHeaderAccessKey),
		IssueDateRaw: l.Field(posHeaderIssueDate),
	}
}

func parseItem(l Line) itemRecord {
	return itemRecord{
		ItemCode:     l.Field(posItemCode),
		CFOP:         l.Field(posItemCFOP),
		CSTPIS:       l.Field(posItemCSTPIS),
		PISBaseRaw:   l.Field(posItemPISBase),
		PISRateRaw:   l.Field(posItemPISRate),
		PISValueRaw:  l.Field(posItemPISValue),
		CSTCOFINS:    l.Field(posItemCSTCOFINS),
		COFINSBase:   l.Field(posItemCOFINSBase),
		COFINSRate:   l.Field(posItemCOFINSRate),
		COFINSValRaw: l.Field(posItemCOFINSVal),
	}
}
