package parser

import (
	"time"

	"github.com/fiscalpoint/sped-report-converter/internal/models"
)

// Assembler joins C100 document headers to their C170 item lines and
// emits one denormalized TransactionRecord per item line.
//
// It is a two-state machine: before the first C100 there is no current
// header; each C100 replaces the current header; each C170 is joined to
// whichever header is current. A single header slot (not a stack) is
// correct here because C100/C170 do not nest. All state lives on the
// Assembler value, so independent runs never interfere.
type Assembler struct {
	catalog Catalog

	header    models.DocumentHeader
	hasHeader bool

	records []models.TransactionRecord
	diag    models.Diagnostics
}

// NewAssembler returns an assembler that enriches item lines from the
// given catalog. The catalog must not be mutated while assembling.
func NewAssembler(catalog Catalog) *Assembler {
	return &Assembler{catalog: catalog}
}

// Feed consumes one tokenized line. Record types other than C100 and
// C170 are ignored.
func (a *Assembler) Feed(line Line) {
	switch line.RecordType {
	case RecordDocHeader:
		a.openHeader(parseHeader(line))
	case RecordDocItem:
		a.emitItem(parseItem(line))
	}
}

// Reset clears the current header without discarding emitted records.
// Called at file boundaries: a header never spans files.
func (a *Assembler) Reset() {
	a.header = models.DocumentHeader{}
	a.hasHeader = false
}

// Records returns every record emitted so far, in input order.
func (a *Assembler) Records() []models.TransactionRecord {
	return a.records
}

// Diagnostics returns the counters accumulated while assembling.
func (a *Assembler) Diagnostics() models.Diagnostics {
	return a.diag
}

func (a *Assembler) openHeader(h headerRecord) {
	issueDate, err := ParseDate(h.IssueDateRaw)
	if err != nil {
		a.diag.InvalidDates++
		issueDate = time.Time{}
	}

	a.header = models.DocumentHeader{
		DocNumber: h.DocNumber,
		AccessKey: h.AccessKey,
		IssueDate: issueDate,
	}
	a.hasHeader = true
}

func (a *Assembler) emitItem(item itemRecord) {
	// An item line before any header is tolerated: the record is still
	// emitted, just without document fields.
	if !a.hasHeader {
		a.diag.HeaderlessItems++
	}

	entry, found := a.catalog.Lookup(item.ItemCode)
	if !found {
		a.diag.CatalogMisses++
	}

	rec := models.TransactionRecord{
		DocNumber: a.header.DocNumber,
		AccessKey: a.header.AccessKey,
		IssueDate: a.header.IssueDate,

		ItemCode:    item.ItemCode,
		Description: entry.Description,
		NCM:         entry.NCM,
		CFOP:        item.CFOP,

		CSTPIS:   item.CSTPIS,
		PISBase:  ParseDecimal(item.PISBaseRaw),
		PISRate:  ParseDecimal(item.PISRateRaw),
		PISValue: ParseDecimal(item.PISValueRaw),

		CSTCOFINS:   item.CSTCOFINS,
		COFINSBase:  ParseDecimal(item.COFINSBase),
		COFINSRate:  ParseDecimal(item.COFINSRate),
		COFINSValue: ParseDecimal(item.COFINSValRaw),
	}
	rec.Total = rec.PISValue + rec.COFINSValue

	a.records = append(a.records, rec)
}
